package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Text(t *testing.T) {
	eng, err := modthree.New()
	require.NoError(t, err)

	in := strings.NewReader("110\n1010\n\n102\n1111")
	var out bytes.Buffer
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(in, &out)))

	summary, err := r.Run(context.Background(), eng)
	require.NoError(t, err)
	assert.Equal(t, runner.Summary{Processed: 5, Failed: 1}, summary)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "0", lines[0])
	assert.Equal(t, "1", lines[1])
	assert.Equal(t, "0", lines[2], "empty input evaluates the initial state")
	assert.True(t, strings.HasPrefix(lines[3], "error: "), lines[3])
	assert.Equal(t, "0", lines[4])
}

func TestRunner_TextVerboseAndCRLF(t *testing.T) {
	eng, err := modthree.New()
	require.NoError(t, err)

	var out bytes.Buffer
	h := runner.NewTextHandler(strings.NewReader("10\r\n"), &out, runner.WithVerbose(true), runner.WithPrompt("> "))
	_, err = runner.NewRunner(runner.WithInputHandler(h)).Run(context.Background(), eng)
	require.NoError(t, err)

	assert.Equal(t, "> 2\t(S0 -> S1 -> S2)\n> ", out.String())
}

func TestRunner_JSON(t *testing.T) {
	eng, err := modthree.New()
	require.NoError(t, err)

	in := strings.NewReader("\"1101\"\n{\"input\": \"11\"}\n1x\n")
	var out bytes.Buffer
	r := runner.NewRunner(runner.WithInputHandler(runner.NewJSONHandler(in, &out)))

	summary, err := r.Run(context.Background(), eng)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Failed)

	dec := json.NewDecoder(&out)
	var results []runner.JSONResult
	for dec.More() {
		var res runner.JSONResult
		require.NoError(t, dec.Decode(&res))
		results = append(results, res)
	}
	require.Len(t, results, 3)

	assert.Equal(t, "1101", results[0].Input)
	assert.EqualValues(t, 1, results[0].Output)
	assert.Equal(t, domain.StateName("S1"), results[0].FinalState)
	assert.Len(t, results[0].Path, 5)
	assert.NotEmpty(t, results[0].RunID)

	assert.Equal(t, "11", results[1].Input)
	assert.EqualValues(t, 0, results[1].Output)

	assert.Equal(t, 3, results[2].Line)
	assert.Equal(t, domain.KindInvalidToken, results[2].Kind)
	assert.Contains(t, results[2].Error, "x")
}

func TestRunner_InputTooLarge(t *testing.T) {
	eng, err := modthree.New()
	require.NoError(t, err)

	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewJSONHandler(strings.NewReader("1111\n"), &out)),
		runner.WithMaxInputSize(3),
	)
	summary, err := r.Run(context.Background(), eng)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, out.String(), `"kind":"invalid_input"`)
}

func TestRunner_Canceled(t *testing.T) {
	eng, err := modthree.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("1\n"), &out)))
	_, err = r.Run(ctx, eng)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

type failingHandler struct{}

func (failingHandler) Input(ctx context.Context) (string, error) { return "1", nil }
func (failingHandler) Output(ctx context.Context, res runner.Result) error {
	return errors.New("broken pipe")
}

func TestRunner_HandlerErrorStops(t *testing.T) {
	eng, err := modthree.New()
	require.NoError(t, err)

	summary, err := runner.NewRunner(runner.WithInputHandler(failingHandler{})).Run(context.Background(), eng)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, 1, summary.Processed)
}
