package optiontree

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// State is the flat, order-independent form of a tree handed to the
// persistence layer. Together with the schema it fully determines the tree.
type State struct {
	CheckStates map[string]CheckState
	AddedInfo   map[string]m.AddedInfo
	Values      map[string]string
}

// Serialize captures every non-default node state keyed by path.
func (t *Tree) Serialize() State {
	st := State{
		CheckStates: make(map[string]CheckState),
		AddedInfo:   make(map[string]m.AddedInfo),
		Values:      make(map[string]string),
	}

	t.Walk(func(n *Node) bool {
		if n.state != Unchecked {
			st.CheckStates[n.path] = n.state
		}

		if !n.addedInfo.IsEmpty() {
			st.AddedInfo[n.path] = n.addedInfo
		}

		if n.value != "" {
			st.Values[n.path] = n.value
		}

		return true
	})

	return st
}

// Restore replaces the tree's contents with st. Paths the schema does not
// know are skipped and reported in the returned error, which wraps
// ErrUnknownPath; everything else is still restored. A state selecting more
// than one member of an exclusive group is reported with
// ErrExclusiveConflict.
func (t *Tree) Restore(st State) error {
	t.Clear()
	t.Walk(func(n *Node) bool {
		n.addedInfo = m.AddedInfo{}
		return true
	})

	var unknown []string

	for path, state := range st.CheckStates {
		n, ok := t.index[path]
		if !ok {
			unknown = append(unknown, path)
			continue
		}

		// settle drops the selection again where the children derive it.
		n.selected = state == Checked
	}

	for _, r := range t.roots {
		recompute(r)
	}

	errs := t.exclusiveConflicts()

	for path, info := range st.AddedInfo {
		n, ok := t.index[path]
		if !ok {
			unknown = append(unknown, path)
			continue
		}

		n.addedInfo = info
	}

	for path, value := range st.Values {
		n, ok := t.index[path]
		if !ok {
			unknown = append(unknown, path)
			continue
		}

		n.value = value
	}

	sort.Strings(unknown)

	for _, p := range unknown {
		errs = append(errs, fmt.Errorf("%w: %q in schema %s", ErrUnknownPath, p, t.schema.Name))
	}

	return errors.Join(errs...)
}

// exclusiveConflicts reports every sibling set in which more than one member
// of the same group is checked or partially checked.
func (t *Tree) exclusiveConflicts() []error {
	var errs []error

	check := func(siblings []*Node) {
		active := make(map[string][]string)

		for _, s := range siblings {
			if s.group != "" && s.state != Unchecked {
				active[s.group] = append(active[s.group], s.path)
			}
		}

		groups := make([]string, 0, len(active))
		for g := range active {
			groups = append(groups, g)
		}

		sort.Strings(groups)

		for _, g := range groups {
			if paths := active[g]; len(paths) > 1 {
				errs = append(errs, fmt.Errorf("%w: group %q has %v", ErrExclusiveConflict, g, paths))
			}
		}
	}

	check(t.roots)
	t.Walk(func(n *Node) bool {
		check(n.children)
		return true
	})

	return errs
}

// recompute derives states bottom-up from the selected flags.
func recompute(n *Node) {
	for _, c := range n.children {
		recompute(c)
	}

	n.settle()
}

// Equal reports whether both trees use the same schema and carry the same
// states, annotations and values.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}

	if t.schema.Name != o.schema.Name {
		return false
	}

	a, b := t.Serialize(), o.Serialize()

	return maps.Equal(a.CheckStates, b.CheckStates) &&
		maps.Equal(a.AddedInfo, b.AddedInfo) &&
		maps.Equal(a.Values, b.Values)
}

// Role is a structural property nodes can be queried by.
type Role int

// Queryable roles.
const (
	// RoleGroup values are exclusive group ids.
	RoleGroup Role = iota
	// RoleUserSpecifiable values are EditKind names.
	RoleUserSpecifiable
	// RoleNoControl has the single value "true".
	RoleNoControl
)

func (n *Node) roleValue(role Role) (string, bool) {
	switch role {
	case RoleGroup:
		return n.group, n.group != ""
	case RoleUserSpecifiable:
		return string(n.editable), n.editable != EditNone
	case RoleNoControl:
		return "true", n.noControl
	default:
		return "", false
	}
}

// FindItemsByRole returns the nodes carrying role, restricted to the given
// role values when any are passed, in depth-first order.
func (t *Tree) FindItemsByRole(role Role, values ...string) []*Node {
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}

	var found []*Node

	t.Walk(func(n *Node) bool {
		v, ok := n.roleValue(role)
		if !ok {
			return true
		}

		if _, match := want[v]; len(want) == 0 || match {
			found = append(found, n)
		}

		return true
	})

	return found
}
