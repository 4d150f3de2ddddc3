package domain

import (
	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// CompareElements compares two paths component by component and returns one
// comparison tree per path, shaped like that path. The deepest key of each
// tree holds whether the path agrees with the other one up to that depth;
// components past the end of the shorter path never match. With pairwise
// false both deepest keys are false, which records an element that has no
// counterpart.
func CompareElements(e1, e2 string, pairwise bool) (m.ComparisonTree, m.ComparisonTree) {
	c1, c2 := ot.SplitPath(e1), ot.SplitPath(e2)

	return elementTree(c1, c2, pairwise), elementTree(c2, c1, pairwise)
}

func elementTree(own, other []string, pairwise bool) m.ComparisonTree {
	tree := m.ComparisonTree{}
	if len(own) == 0 {
		return tree
	}

	match := pairwise
	cur := tree

	for i, component := range own {
		match = match && i < len(other) && other[i] == component

		if i == len(own)-1 {
			cur[component] = m.Leaf(match)
			break
		}

		next := m.ComparisonTree{}
		cur[component] = m.Branch(next)
		cur = next
	}

	return tree
}

// InformativeElements drops every path that is a prefix of another path in
// the list, keeping the most specific selections in their original order.
func InformativeElements(paths []string) []string {
	kept := make([]bool, len(paths))

	for i := len(paths) - 1; i >= 0; i-- {
		redundant := false

		for j := i + 1; j < len(paths); j++ {
			if kept[j] && ot.IsPathPrefix(paths[i], paths[j]) {
				redundant = true
				break
			}
		}

		if redundant {
			continue
		}

		kept[i] = true

		for j := i + 1; j < len(paths); j++ {
			if kept[j] && ot.IsPathPrefix(paths[j], paths[i]) {
				kept[j] = false
			}
		}
	}

	out := make([]string, 0, len(paths))

	for i, p := range paths {
		if kept[i] {
			out = append(out, p)
		}
	}

	return out
}

// SummarizePathComparison merges comparison trees by key. A key matches if
// it matched in any input; a subtree wins over a leaf for the same key.
func SummarizePathComparison(trees ...m.ComparisonTree) m.ComparisonTree {
	out := m.ComparisonTree{}

	for _, t := range trees {
		mergeInto(out, t)
	}

	return out
}

func mergeInto(dst, src m.ComparisonTree) {
	for key, node := range src {
		existing, ok := dst[key]

		switch {
		case !ok:
			dst[key] = node.Clone()
		case existing.IsLeaf() && node.IsLeaf():
			existing.Match = existing.Match || node.Match
		case existing.IsLeaf():
			dst[key] = node.Clone()
		case node.IsLeaf():
		default:
			mergeInto(existing.Children, node.Children)
		}
	}
}
