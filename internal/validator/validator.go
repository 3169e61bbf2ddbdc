package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/schema"
)

// Gap is a state/token pair with no transition. Processing that token in that
// state fails with a no-transition error.
type Gap struct {
	State string
	Token string
}

// Report lists structural findings that do not make a definition invalid.
type Report struct {
	// Unreachable lists states no input can reach from the initial state.
	Unreachable []string
	// Gaps lists missing transitions of reachable states.
	Gaps []Gap
	// NoAccepting is set when no reachable state has an output.
	NoAccepting bool
}

// Empty reports whether the analysis found nothing.
func (r Report) Empty() bool {
	return len(r.Unreachable) == 0 && len(r.Gaps) == 0 && !r.NoAccepting
}

// Warnings renders the report as one message per finding.
func (r Report) Warnings() []string {
	var out []string
	for _, st := range r.Unreachable {
		out = append(out, fmt.Sprintf("state %q is unreachable from the initial state", st))
	}
	for _, g := range r.Gaps {
		out = append(out, fmt.Sprintf("state %q has no transition on %q", g.State, g.Token))
	}
	if r.NoAccepting {
		out = append(out, "no reachable state has an output; every input will be rejected")
	}
	return out
}

func (r Report) String() string {
	return strings.Join(r.Warnings(), "\n")
}

// Analyze crawls def from its initial state. Targets that name unknown states
// are skipped; the engine reports those as errors when the machine is built.
func Analyze(def schema.Definition) Report {
	visited := make(map[string]bool)
	queue := []string{def.Initial}
	tokens := def.AlphabetSet().Tokens()

	var report Report
	accepting := false

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		spec, ok := def.States[current]
		if !ok {
			continue
		}
		visited[current] = true
		if spec.Output != nil {
			accepting = true
		}

		row := def.Transitions[current]
		for _, t := range tokens {
			tok := string(t)
			target, ok := row[tok]
			if !ok {
				report.Gaps = append(report.Gaps, Gap{State: current, Token: tok})
				continue
			}
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	for name := range def.States {
		if !visited[name] {
			report.Unreachable = append(report.Unreachable, name)
		}
	}
	sort.Strings(report.Unreachable)
	sort.Slice(report.Gaps, func(i, j int) bool {
		if report.Gaps[i].State != report.Gaps[j].State {
			return report.Gaps[i].State < report.Gaps[j].State
		}
		return report.Gaps[i].Token < report.Gaps[j].Token
	})
	report.NoAccepting = len(visited) > 0 && !accepting

	return report
}
