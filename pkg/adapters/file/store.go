// Package file persists machine definitions as YAML documents in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

const ext = ".yaml"

// ErrInvalidName is returned for names that cannot be used as file names.
var ErrInvalidName = domain.ErrInvalidName

// Store implements ports.DefinitionStore using the local filesystem.
// Each definition lives in <BasePath>/<name>.yaml.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".automata/definitions".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".automata", "definitions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.BasePath, name+ext), nil
}

// Save writes the definition atomically: a temp file in the same directory is
// synced and then renamed over the destination.
func (s *Store) Save(ctx context.Context, name string, def schema.Definition) error {
	destPath, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure definitions directory: %w", err)
	}

	data, err := schema.Marshal(def, schema.FormatYAML)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing definition for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads and validates the definition file.
func (s *Store) Load(ctx context.Context, name string) (schema.Definition, error) {
	path, err := s.path(name)
	if err != nil {
		return schema.Definition{}, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return schema.Definition{}, domain.ErrDefinitionNotFound
	}

	def, err := schema.Load(path)
	if err != nil {
		return schema.Definition{}, err
	}
	return def, nil
}

// Delete removes the definition file.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete definition file: %w", err)
	}
	return nil
}

// List returns the names of all definition files.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}
