package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeMarkdown_ModThree(t *testing.T) {
	md := tui.DescribeMarkdown(modthree.Definition())

	assert.True(t, strings.HasPrefix(md, "# modthree\n"))
	assert.Contains(t, md, "**Alphabet:** `0`, `1`")
	assert.Contains(t, md, "**Initial state:** `S0`")
	assert.Contains(t, md, "| S1 | yes | 1 |")
	assert.Contains(t, md, "| State | 0 | 1 |")
	assert.Contains(t, md, "| S2 | S1 | S2 |")
}

func TestDescribeMarkdown_MissingTransitions(t *testing.T) {
	def := modthree.Definition()
	def.Name = ""
	delete(def.Transitions, "S2")
	spec := def.States["S1"]
	spec.Output = nil
	def.States["S1"] = spec

	md := tui.DescribeMarkdown(def)
	assert.True(t, strings.HasPrefix(md, "# machine\n"))
	assert.Contains(t, md, "| S2 | - | - |")
	assert.Contains(t, md, "| S1 | no | |")
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.Banner(&buf, termenv.Ascii)

	out := buf.String()
	assert.Contains(t, out, `\__,_|\__,_|`)
	assert.NotContains(t, out, "\x1b[", "ascii profile must not emit escape codes")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "body")
}
