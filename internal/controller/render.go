package controller

import (
	"fmt"
	"sort"
	"strings"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// comparisonLine is one node of a comparison tree in preorder.
type comparisonLine struct {
	depth int
	label string
	path  []string
	leaf  bool
	match bool
}

// flattenComparison walks tree with keys sorted. Branch lines match when
// every leaf below them does.
func flattenComparison(tree m.ComparisonTree) []comparisonLine {
	var lines []comparisonLine

	var visit func(t m.ComparisonTree, depth int, parent []string)
	visit = func(t m.ComparisonTree, depth int, parent []string) {
		for _, key := range t.Keys() {
			node := t[key]
			path := append(append([]string(nil), parent...), key)

			line := comparisonLine{depth: depth, label: key, path: path, leaf: node.IsLeaf()}
			if line.leaf {
				line.match = node.Match
			} else {
				line.match = node.Children.AllMatch()
			}

			lines = append(lines, line)

			if !line.leaf {
				visit(node.Children, depth+1, path)
			}
		}
	}

	visit(tree, 0, nil)

	return lines
}

// comparisonLeaves returns only the leaf lines of tree.
func comparisonLeaves(tree m.ComparisonTree) []comparisonLine {
	var leaves []comparisonLine

	for _, l := range flattenComparison(tree) {
		if l.leaf {
			leaves = append(leaves, l)
		}
	}

	return leaves
}

func moduleIDs(sides ...map[string]m.ComparisonTree) []string {
	seen := make(map[string]struct{})

	for _, side := range sides {
		for id := range side {
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func signTitle(ref m.SignRef) string {
	if ref.EntryID == "" {
		return ref.Gloss
	}

	return fmt.Sprintf("%s (%s)", ref.Gloss, ref.EntryID)
}

func pendingNote(pending []m.ModuleType) string {
	if len(pending) == 0 {
		return ""
	}

	names := make([]string, 0, len(pending))
	for _, t := range pending {
		names = append(names, string(t))
	}

	return "Not compared yet: " + strings.Join(names, ", ")
}

func stateMark(state string) string {
	switch state {
	case "checked":
		return "[x]"
	case "partial":
		return "[~]"
	default:
		return "[ ]"
	}
}

func outlineText(line m.OutlineLine) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("  ", line.Depth))
	b.WriteString(stateMark(line.State))
	b.WriteString(" ")
	b.WriteString(line.Label)

	if line.Kind != "" {
		fmt.Fprintf(&b, " (%s)", line.Kind)
	}

	if line.Value != "" {
		fmt.Fprintf(&b, " = %s", line.Value)
	}

	return b.String()
}

func moduleElements(mod m.ModuleSummary) []string {
	elements := make([]string, 0, len(mod.Paths)+len(mod.Values))
	for _, p := range mod.Paths {
		if v, ok := mod.Values[p]; ok {
			elements = append(elements, fmt.Sprintf("%s = %s", p, v))
			continue
		}

		elements = append(elements, p)
	}

	if mod.Relation != nil {
		elements = append(elements, fmt.Sprintf("X: %s, Y: %s, contact: %t", mod.Relation.X, mod.Relation.Y, mod.Relation.Contact))
	}

	return elements
}

func matchWord(match bool) string {
	if match {
		return "match"
	}

	return "differs"
}
