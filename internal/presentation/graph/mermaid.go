package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/schema"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart for a definition.
// Shapes:
// - Accepting state: (((Double circle))) labelled with its output
// - Other states: ((Circle))
// - Entry: a small filled point pointing at the initial state
// Edges between the same pair of states are merged into one labelled edge.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def schema.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	names := make([]string, 0, len(def.States))
	for name := range def.States {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := assignNodeIDs(def)
	nodeID := func(name string) string {
		if id, ok := ids[name]; ok {
			return id
		}
		return sanitizeMermaidID(name)
	}

	sb.WriteString("    " + startNodeID + "(( )) --> " + nodeID(def.Initial) + "\n")

	for _, name := range names {
		safeID := nodeID(name)
		label := escapeLabel(name)

		if out := def.States[name].Output; out != nil {
			fmt.Fprintf(&sb, "    %s(((\"%s / %s\")))\n", safeID, label, escapeLabel(fmt.Sprint(out)))
		} else {
			fmt.Fprintf(&sb, "    %s((\"%s\"))\n", safeID, label)
		}
	}

	for _, from := range names {
		row := def.Transitions[from]
		if len(row) == 0 {
			continue
		}

		// Group tokens by target so parallel edges collapse.
		byTarget := make(map[string][]string)
		for tok, to := range row {
			byTarget[to] = append(byTarget[to], tok)
		}
		targets := make([]string, 0, len(byTarget))
		for to := range byTarget {
			targets = append(targets, to)
		}
		sort.Strings(targets)

		for _, to := range targets {
			tokens := byTarget[to]
			sort.Strings(tokens)
			for i, t := range tokens {
				tokens[i] = escapeLabel(t)
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
				nodeID(from), strings.Join(tokens, ", "), nodeID(to))
		}
	}

	sb.WriteString("    style " + startNodeID + " fill:#000,stroke:#000\n")

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := nodeID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.CurrentState))
		}
	}

	return sb.String()
}

const startNodeID = "__start__"

// assignNodeIDs gives every state named in def a distinct node ID. Names that
// sanitize to a taken ID get a numeric suffix.
func assignNodeIDs(def schema.Definition) map[string]string {
	seen := map[string]bool{def.Initial: true}
	for name := range def.States {
		seen[name] = true
	}
	for from, row := range def.Transitions {
		seen[from] = true
		for _, to := range row {
			seen[to] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	used := map[string]bool{startNodeID: true}
	ids := make(map[string]string, len(names))
	for _, name := range names {
		base := sanitizeMermaidID(name)
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		used[id] = true
		ids[name] = id
	}
	return ids
}

// sanitizeMermaidID maps a state name to a valid Mermaid node ID.
func sanitizeMermaidID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := b.String()
	// "end" is a Mermaid keyword
	if strings.EqualFold(s, "end") {
		s += "_"
	}
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
