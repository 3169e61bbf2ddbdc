package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunDefinitionStoreContract(t, store)
}

func TestFileStore_WritesYAML(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, modthree.Name, modthree.Definition()))

	data, err := os.ReadFile(filepath.Join(dir, "modthree.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "initial: S0")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		err := store.Save(ctx, name, modthree.Definition())
		assert.ErrorIs(t, err, file.ErrInvalidName, name)
	}
}
