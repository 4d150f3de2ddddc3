package optiontree

import (
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// CheckState is the tri-state of a node.
type CheckState int

// Check states.
const (
	Unchecked CheckState = iota
	Partial
	Checked
)

func (s CheckState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Partial:
		return "partial"
	case Checked:
		return "checked"
	default:
		return "unknown"
	}
}

// ParseCheckState maps a state name back to its value.
func ParseCheckState(s string) (CheckState, bool) {
	for _, st := range []CheckState{Unchecked, Partial, Checked} {
		if st.String() == s {
			return st, true
		}
	}

	return Unchecked, false
}

// Node is one option in a Tree. Nodes are owned by their tree and are only
// mutated through it.
type Node struct {
	tree       *Tree
	parent     *Node
	children   []*Node
	label      string
	components []string
	path       string

	group     string
	editable  EditKind
	noControl bool

	selected  bool
	state     CheckState
	value     string
	addedInfo m.AddedInfo
}

// Label returns the node's own label.
func (n *Node) Label() string { return n.label }

// Path returns the delimiter-joined labels from the top level down to n.
func (n *Node) Path() string { return n.path }

// Components returns a copy of the labels making up the path.
func (n *Node) Components() []string { return append([]string(nil), n.components...) }

// Depth is 1 for top-level nodes.
func (n *Node) Depth() int { return len(n.components) }

// Parent returns nil for top-level nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children in schema order.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// State returns the node's check state.
func (n *Node) State() CheckState { return n.state }

// Group returns the mutually exclusive group id, or "".
func (n *Node) Group() string { return n.group }

// Editable returns the kind of value the node accepts.
func (n *Node) Editable() EditKind { return n.editable }

// UserSpecifiable reports whether coders type a value into this node.
func (n *Node) UserSpecifiable() bool { return n.editable != EditNone }

// NoControl reports whether n is a heading without its own checkbox.
func (n *Node) NoControl() bool { return n.noControl }

// Value returns the user-specified value of an editable node.
func (n *Node) Value() string { return n.value }

// AddedInfo returns the node's annotations.
func (n *Node) AddedInfo() m.AddedInfo { return n.addedInfo }

func (n *Node) siblings() []*Node {
	if n.parent != nil {
		return n.parent.children
	}

	return n.tree.roots
}

// settle derives n's state from its selection and its children. An interior
// node whose children are all checked is checked by derivation alone, so its
// selection is dropped; Serialize and Restore rely on this.
func (n *Node) settle() {
	if n.IsLeaf() {
		if n.selected {
			n.state = Checked
		} else {
			n.state = Unchecked
		}

		return
	}

	checked, unchecked := 0, 0

	for _, c := range n.children {
		switch c.state {
		case Checked:
			checked++
		case Unchecked:
			unchecked++
		case Partial:
		}
	}

	switch {
	case checked == len(n.children):
		n.selected = false
		n.state = Checked
	case n.selected:
		n.state = Checked
	case unchecked == len(n.children):
		n.state = Unchecked
	default:
		n.state = Partial
	}
}
