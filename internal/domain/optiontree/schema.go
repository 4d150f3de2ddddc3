package optiontree

import (
	"errors"
	"fmt"
)

// ErrInvalidSchema is returned for schemas that cannot be built into a tree.
var ErrInvalidSchema = errors.New("invalid schema")

// EditKind is the type of value a coder can type into a node.
type EditKind string

// Edit kinds.
const (
	EditNone   EditKind = ""
	EditNumber EditKind = "number"
	EditText   EditKind = "text"
)

// SchemaNode describes one option and its sub-options.
type SchemaNode struct {
	Label string
	// Group makes siblings sharing the same non-empty value mutually
	// exclusive.
	Group    string
	Editable EditKind
	// NoControl marks a heading that cannot be checked by itself.
	NoControl bool
	Children []SchemaNode
}

// Schema is a named, fixed option hierarchy.
type Schema struct {
	Name  string
	Roots []SchemaNode
}

// Validate checks that labels are non-empty and unique among siblings, so
// that every node has a distinct path.
func (s Schema) Validate() error {
	return validateSiblings(s.Name, nil, s.Roots)
}

func validateSiblings(schema string, parent []string, nodes []SchemaNode) error {
	seen := make(map[string]struct{}, len(nodes))

	for _, n := range nodes {
		if n.Label == "" {
			return fmt.Errorf("%w %s: empty label under %q", ErrInvalidSchema, schema, JoinPath(parent...))
		}

		if _, dup := seen[n.Label]; dup {
			return fmt.Errorf("%w %s: duplicate label %q under %q", ErrInvalidSchema, schema, n.Label, JoinPath(parent...))
		}

		seen[n.Label] = struct{}{}

		if n.Editable != EditNone && len(n.Children) > 0 {
			return fmt.Errorf("%w %s: editable node %q has children", ErrInvalidSchema, schema, n.Label)
		}

		components := append(append([]string(nil), parent...), n.Label)
		if err := validateSiblings(schema, components, n.Children); err != nil {
			return err
		}
	}

	return nil
}

// Opt builds a plain checkable option.
func Opt(label string, children ...SchemaNode) SchemaNode {
	return SchemaNode{Label: label, Children: children}
}

// Radio builds an option that is mutually exclusive with its siblings in the
// same group.
func Radio(group, label string, children ...SchemaNode) SchemaNode {
	return SchemaNode{Label: label, Group: group, Children: children}
}

// Heading builds a non-interactive heading.
func Heading(label string, children ...SchemaNode) SchemaNode {
	return SchemaNode{Label: label, NoControl: true, Children: children}
}

// Field builds an editable leaf.
func Field(label string, kind EditKind) SchemaNode {
	return SchemaNode{Label: label, Editable: kind}
}
