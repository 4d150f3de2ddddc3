package optiontree

import (
	"errors"
	"fmt"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

var (
	// ErrNoControl is returned when toggling a heading without a checkbox.
	ErrNoControl = errors.New("node has no check control")
	// ErrExclusiveSelection is returned when unchecking the selected member of
	// a mutually exclusive group without force; select a sibling instead.
	ErrExclusiveSelection = errors.New("cannot uncheck the selected option of an exclusive group")
	// ErrNotEditable is returned when setting a value on a node that does not
	// take one.
	ErrNotEditable = errors.New("node is not user-specifiable")
	// ErrForeignNode is returned for nodes that belong to another tree.
	ErrForeignNode = errors.New("node belongs to a different tree")
	// ErrUnknownPath is returned by path-based mutators that cannot resolve
	// their path.
	ErrUnknownPath = errors.New("unknown path")
	// ErrAmbiguousPath is returned by path-based mutators whose path resolves
	// to more than one node.
	ErrAmbiguousPath = errors.New("ambiguous path")
	// ErrExclusiveConflict is returned by Restore when more than one member of
	// an exclusive group is selected.
	ErrExclusiveConflict = errors.New("more than one option of an exclusive group is selected")
)

// Tree is an instance of a Schema holding check states, values and
// annotations.
type Tree struct {
	schema Schema
	roots  []*Node
	// index is derived from the structure, which never changes after New.
	index map[string]*Node
}

// New builds an unchecked tree for schema.
func New(schema Schema) (*Tree, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	t := &Tree{schema: schema, index: make(map[string]*Node)}
	t.roots = t.build(nil, schema.Roots)

	return t, nil
}

// MustNew is New for built-in schemas.
func MustNew(schema Schema) *Tree {
	t, err := New(schema)
	if err != nil {
		panic(err)
	}

	return t
}

func (t *Tree) build(parent *Node, specs []SchemaNode) []*Node {
	nodes := make([]*Node, 0, len(specs))

	for _, spec := range specs {
		var components []string
		if parent != nil {
			components = append(components, parent.components...)
		}

		components = append(components, spec.Label)

		n := &Node{
			tree:       t,
			parent:     parent,
			label:      spec.Label,
			components: components,
			path:       JoinPath(components...),
			group:      spec.Group,
			editable:   spec.Editable,
			noControl:  spec.NoControl,
		}
		t.index[n.path] = n
		n.children = t.build(n, spec.Children)
		nodes = append(nodes, n)
	}

	return nodes
}

// SchemaName returns the name of the schema the tree was built from.
func (t *Tree) SchemaName() string { return t.schema.Name }

// Schema returns the schema the tree was built from.
func (t *Tree) Schema() Schema { return t.schema }

// Roots returns the top-level nodes.
func (t *Tree) Roots() []*Node { return append([]*Node(nil), t.roots...) }

// Walk visits nodes depth-first in schema order. Returning false from fn
// skips the node's descendants.
func (t *Tree) Walk(fn func(*Node) bool) {
	stack := make([]*Node, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(n) {
			continue
		}

		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

// Node returns the node at an exact path, or nil.
func (t *Tree) Node(path string) *Node {
	return t.index[path]
}

// Check selects n. Ancestors become at least partially checked, and any
// checked sibling in the same exclusive group of n or of one of its ancestors
// is cleared.
func (t *Tree) Check(n *Node) error {
	if n.tree != t {
		return ErrForeignNode
	}

	if n.noControl {
		return fmt.Errorf("check %q: %w", n.path, ErrNoControl)
	}

	for cur := n; cur != nil; cur = cur.parent {
		t.clearExclusiveSiblings(cur)
	}

	n.selected = true
	n.settle()
	t.propagate(n.parent)

	return nil
}

// Uncheck clears n and its descendants. Without force, headings and the
// selected member of an exclusive group are left alone and an error is
// returned.
func (t *Tree) Uncheck(n *Node, force bool) error {
	if n.tree != t {
		return ErrForeignNode
	}

	if !force {
		if n.noControl {
			return fmt.Errorf("uncheck %q: %w", n.path, ErrNoControl)
		}

		if n.group != "" && n.state == Checked {
			return fmt.Errorf("uncheck %q: %w", n.path, ErrExclusiveSelection)
		}
	}

	clearSubtree(n)
	t.propagate(n.parent)

	return nil
}

// CheckPath checks the single node at path.
func (t *Tree) CheckPath(path string) error {
	n, err := t.resolveOne(path)
	if err != nil {
		return err
	}

	return t.Check(n)
}

// UncheckPath unchecks the single node at path.
func (t *Tree) UncheckPath(path string, force bool) error {
	n, err := t.resolveOne(path)
	if err != nil {
		return err
	}

	return t.Uncheck(n, force)
}

func (t *Tree) resolveOne(path string) (*Node, error) {
	nodes := t.FindItemsByPath(path)

	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPath, path)
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d nodes", ErrAmbiguousPath, path, len(nodes))
	}
}

// Clear unchecks every node, bypassing guards.
func (t *Tree) Clear() {
	for _, r := range t.roots {
		clearSubtree(r)
	}
}

// SetValue stores a user-specified value on an editable node and checks it.
// An empty value unchecks the node.
func (t *Tree) SetValue(n *Node, value string) error {
	if n.tree != t {
		return ErrForeignNode
	}

	if !n.UserSpecifiable() {
		return fmt.Errorf("set value on %q: %w", n.path, ErrNotEditable)
	}

	if value == "" {
		return t.Uncheck(n, true)
	}

	if err := t.Check(n); err != nil {
		return err
	}

	n.value = value

	return nil
}

// SetAddedInfo replaces the annotations of n.
func (t *Tree) SetAddedInfo(n *Node, info m.AddedInfo) error {
	if n.tree != t {
		return ErrForeignNode
	}

	n.addedInfo = info

	return nil
}

// CheckedPaths returns the paths of all fully checked nodes, ancestors
// before descendants.
func (t *Tree) CheckedPaths() []string {
	var paths []string

	t.Walk(func(n *Node) bool {
		if n.state == Unchecked {
			return false
		}

		if n.state == Checked {
			paths = append(paths, n.path)
		}

		return true
	})

	return paths
}

// FindItemsByPath resolves a path to nodes. A path anchored at the top level
// resolves to at most one node; otherwise every node whose path ends with
// the given components is returned. Unknown paths resolve to nothing.
func (t *Tree) FindItemsByPath(path string) []*Node {
	components := SplitPath(path)
	if len(components) == 0 {
		return nil
	}

	if n, ok := t.index[JoinPath(components...)]; ok {
		return []*Node{n}
	}

	var found []*Node

	t.Walk(func(n *Node) bool {
		if hasSuffix(n.components, components) {
			found = append(found, n)
		}

		return true
	})

	return found
}

func (t *Tree) clearExclusiveSiblings(n *Node) {
	if n.group == "" {
		return
	}

	for _, s := range n.siblings() {
		if s != n && s.group == n.group && s.state != Unchecked {
			clearSubtree(s)
		}
	}
}

// propagate recomputes the derived state of n and its ancestors.
func (t *Tree) propagate(n *Node) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.settle()
	}
}

func clearSubtree(n *Node) {
	n.selected = false
	n.state = Unchecked
	n.value = ""

	for _, c := range n.children {
		clearSubtree(c)
	}
}

// Clone returns an independent copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{schema: t.schema, index: make(map[string]*Node, len(t.index))}
	c.roots = make([]*Node, 0, len(t.roots))

	for _, r := range t.roots {
		c.roots = append(c.roots, c.copyNode(nil, r))
	}

	return c
}

func (t *Tree) copyNode(parent, src *Node) *Node {
	n := *src
	n.tree = t
	n.parent = parent
	n.children = make([]*Node, 0, len(src.children))
	t.index[n.path] = &n

	for _, child := range src.children {
		n.children = append(n.children, t.copyNode(&n, child))
	}

	return &n
}
