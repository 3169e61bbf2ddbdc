package validator

import (
	"testing"

	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/stretchr/testify/assert"
)

func TestAnalyze_ModThree(t *testing.T) {
	report := Analyze(modthree.Definition())
	assert.True(t, report.Empty())
	assert.Empty(t, report.Warnings())
}

func TestAnalyze_Findings(t *testing.T) {
	def := dsl.New("partial").
		Alphabet("ab").
		Initial("A").
		State("A").On("a", "B").
		State("B").On("a", "A").On("b", "B").
		State("Island").Output(1).On("a", "Island").On("b", "Island").
		MustBuild()

	report := Analyze(def)

	assert.Equal(t, []string{"Island"}, report.Unreachable)
	assert.Equal(t, []Gap{{State: "A", Token: "b"}}, report.Gaps)
	assert.True(t, report.NoAccepting)
	assert.Len(t, report.Warnings(), 3)
	assert.Contains(t, report.String(), `state "A" has no transition on "b"`)
}

func TestAnalyze_UnknownTargetIsSkipped(t *testing.T) {
	def := modthree.Definition()
	def.Transitions["S2"]["1"] = "Nowhere"

	report := Analyze(def)
	assert.Empty(t, report.Unreachable)
	assert.Empty(t, report.Gaps)
}

func TestAnalyze_RepeatedAlphabetTokens(t *testing.T) {
	def := modthree.Definition()
	def.Alphabet = []string{"0", "1", "1", "0"}
	delete(def.Transitions["S2"], "1")

	report := Analyze(def)
	assert.Equal(t, []Gap{{State: "S2", Token: "1"}}, report.Gaps)
	assert.Len(t, report.Warnings(), 1)
}
