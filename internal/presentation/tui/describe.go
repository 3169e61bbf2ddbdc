package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/schema"
)

// DescribeMarkdown renders a definition as a markdown document: the alphabet,
// a state table and a transition table with one column per token.
func DescribeMarkdown(def schema.Definition) string {
	var sb strings.Builder

	title := def.Name
	if title == "" {
		title = "machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	tokens := append([]string(nil), def.Alphabet...)
	sort.Strings(tokens)
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = "`" + t + "`"
	}
	fmt.Fprintf(&sb, "**Alphabet:** %s\n\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&sb, "**Initial state:** `%s`\n\n", def.Initial)

	names := make([]string, 0, len(def.States))
	for name := range def.States {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString("## States\n\n")
	sb.WriteString("| State | Accepting | Output |\n")
	sb.WriteString("|---|---|---|\n")
	for _, name := range names {
		out := def.States[name].Output
		if out == nil {
			fmt.Fprintf(&sb, "| %s | no | |\n", cell(name))
			continue
		}
		fmt.Fprintf(&sb, "| %s | yes | %s |\n", cell(name), cell(fmt.Sprint(out)))
	}

	sb.WriteString("\n## Transitions\n\n")
	sb.WriteString("| State |")
	for _, t := range tokens {
		fmt.Fprintf(&sb, " %s |", cell(t))
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---|", len(tokens)))
	sb.WriteString("\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "| %s |", cell(name))
		row := def.Transitions[name]
		for _, t := range tokens {
			to, ok := row[t]
			if !ok {
				to = "-"
			}
			fmt.Fprintf(&sb, " %s |", cell(to))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
