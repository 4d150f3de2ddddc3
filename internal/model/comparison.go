package model

import "sort"

// ComparisonNode is either a leaf carrying a match outcome or an interior
// node whose Children are keyed by path component.
type ComparisonNode struct {
	Match    bool
	Children ComparisonTree
}

// ComparisonTree maps path components to nodes. It mirrors the path
// structure of the compared selections.
type ComparisonTree map[string]*ComparisonNode

// Leaf builds a leaf node.
func Leaf(match bool) *ComparisonNode {
	return &ComparisonNode{Match: match}
}

// Branch builds an interior node.
func Branch(children ComparisonTree) *ComparisonNode {
	if children == nil {
		children = ComparisonTree{}
	}

	return &ComparisonNode{Children: children}
}

// IsLeaf reports whether n carries a match outcome.
func (n *ComparisonNode) IsLeaf() bool { return n.Children == nil }

// Clone deep-copies the node.
func (n *ComparisonNode) Clone() *ComparisonNode {
	if n == nil {
		return nil
	}

	if n.IsLeaf() {
		return Leaf(n.Match)
	}

	return Branch(n.Children.Clone())
}

// Clone deep-copies the tree.
func (t ComparisonTree) Clone() ComparisonTree {
	if t == nil {
		return nil
	}

	out := make(ComparisonTree, len(t))
	for k, v := range t {
		out[k] = v.Clone()
	}

	return out
}

// Keys returns the keys in sorted order.
func (t ComparisonTree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// AllMatch reports whether every leaf under t matches. Empty trees match.
func (t ComparisonTree) AllMatch() bool {
	for _, n := range t {
		if n.IsLeaf() {
			if !n.Match {
				return false
			}

			continue
		}

		if !n.Children.AllMatch() {
			return false
		}
	}

	return true
}

// SignComparison is the structural diff of two signs, keyed by module id.
type SignComparison struct {
	Sign1 map[string]ComparisonTree
	Sign2 map[string]ComparisonTree
	// Pending lists module types present in either sign whose comparison is
	// not implemented yet.
	Pending []ModuleType
}
