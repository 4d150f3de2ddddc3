package domain

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/schemas"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// Matcher evaluates search models against a corpus.
type Matcher interface {
	Search(model m.SearchModel, c *corpus.Corpus) (m.ResultSet, error)
}

// MatcherOption configures a Matcher.
type MatcherOption func(*matcher)

// WithEntryIDDigits zero-pads entry ids in results.
func WithEntryIDDigits(digits int) MatcherOption {
	return func(mt *matcher) {
		mt.digits = digits
	}
}

// WithMatcherLogger sets the logger used for debug output.
func WithMatcherLogger(logger *slog.Logger) MatcherOption {
	return func(mt *matcher) {
		mt.logger = logger
	}
}

type signPredicate func(*corpus.Sign) bool

// groupCompiler turns the rows of one target group into a predicate,
// rejecting rows that cannot be satisfied together.
type groupCompiler func(rows []m.SearchTarget) (signPredicate, error)

type matcher struct {
	digits    int
	logger    *slog.Logger
	compilers map[m.TargetType]groupCompiler

	// schemaTrees are empty trees that templates are validated against.
	schemaTrees map[m.ModuleType]*ot.Tree
}

// NewMatcher creates a Matcher.
func NewMatcher(opts ...MatcherOption) Matcher {
	mt := &matcher{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		schemaTrees: make(map[m.ModuleType]*ot.Tree),
	}

	mt.compilers = map[m.TargetType]groupCompiler{
		m.TargetXslot:     compileXslot,
		m.TargetSignLevel: compileSignLevel,
		m.TargetSignType:  compileSignType,
		m.TargetMovement:  compileModuleRows(m.ModuleMovement),
		m.TargetLocation:  compileModuleRows(m.ModuleLocation),
		m.TargetRelation:  compileRelation,
	}

	for _, typ := range []m.ModuleType{m.ModuleMovement, m.ModuleLocation} {
		schema, _ := schemas.ForModuleType(typ)
		mt.schemaTrees[typ] = ot.MustNew(schema)
	}

	for _, opt := range opts {
		opt(mt)
	}

	return mt
}

// group is a set of rows of one target type evaluated as one predicate.
type group struct {
	typ      m.TargetType
	rows     []m.SearchTarget
	negative bool
}

// Search evaluates the included rows of model against every sign of c.
// Under MatchAll the rows form one combined entry; under MatchAny each row
// gets its own entry.
func (mt *matcher) Search(model m.SearchModel, c *corpus.Corpus) (m.ResultSet, error) {
	rows := model.Included()

	for _, row := range rows {
		if err := mt.validate(row); err != nil {
			return m.ResultSet{}, err
		}
	}

	if len(rows) == 0 {
		return m.ResultSet{}, nil
	}

	var result m.ResultSet

	switch model.MatchDegree {
	case m.MatchAny:
		for _, row := range rows {
			pred, err := mt.compile(group{typ: row.Type, rows: []m.SearchTarget{row}, negative: row.Negative})
			if err != nil {
				return m.ResultSet{}, err
			}

			result.Entries = append(result.Entries, mt.collect(c, row.Name, row.Display(), []string{row.Polarity()}, pred))
		}
	case m.MatchAll, "":
		groups := groupRows(rows)
		preds := make([]signPredicate, 0, len(groups))

		for _, g := range groups {
			pred, err := mt.compile(g)
			if err != nil {
				return m.ResultSet{}, err
			}

			preds = append(preds, pred)
		}

		names := make([]string, 0, len(rows))
		polarity := make([]string, 0, len(rows))

		var display []string

		for _, row := range rows {
			names = append(names, row.Name)
			polarity = append(polarity, row.Polarity())
			display = append(display, row.Display()...)
		}

		result.Entries = append(result.Entries, mt.collect(c, strings.Join(names, ", "), display, polarity, allOf(preds)))
	default:
		return m.ResultSet{}, fmt.Errorf("failed to search %s: unknown match degree %q", c.Name, model.MatchDegree)
	}

	return result, nil
}

// groupRows partitions rows by target type in evaluation order. Positive
// rows of a type share one group; each negative row is its own group so
// that it is inverted on its own.
func groupRows(rows []m.SearchTarget) []group {
	var groups []group

	for _, typ := range m.TargetTypeOrder() {
		positive := group{typ: typ}

		var negatives []group

		for _, row := range rows {
			if row.Type != typ {
				continue
			}

			if row.Negative {
				negatives = append(negatives, group{typ: typ, rows: []m.SearchTarget{row}, negative: true})
				continue
			}

			positive.rows = append(positive.rows, row)
		}

		if len(positive.rows) > 0 {
			groups = append(groups, positive)
		}

		groups = append(groups, negatives...)
	}

	return groups
}

func (mt *matcher) compile(g group) (signPredicate, error) {
	compile, ok := mt.compilers[g.typ]
	if !ok {
		return nil, &m.InvalidTargetError{Target: g.rows[0].Name, Reason: fmt.Sprintf("unknown target type %q", g.typ)}
	}

	pred, err := compile(g.rows)
	if err != nil {
		return nil, err
	}

	if g.negative {
		return func(s *corpus.Sign) bool { return !pred(s) }, nil
	}

	return pred, nil
}

func (mt *matcher) collect(c *corpus.Corpus, name string, display, polarity []string, pred signPredicate) m.ResultEntry {
	entry := m.ResultEntry{
		Name:     name,
		Corpus:   c.Name,
		Display:  display,
		Signs:    []m.SignRef{},
		Negative: polarity,
	}

	for _, s := range c.Signs {
		if pred(s) {
			entry.Signs = append(entry.Signs, s.Ref(mt.digits))
		}
	}

	mt.logger.Debug("search target evaluated",
		slog.String("corpus", c.Name),
		slog.String("target", name),
		slog.Int("signs", len(c.Signs)),
		slog.Int("matches", len(entry.Signs)))

	return entry
}

func (mt *matcher) validate(row m.SearchTarget) error {
	if _, ok := mt.compilers[row.Type]; !ok {
		return &m.InvalidTargetError{Target: row.Name, Reason: fmt.Sprintf("unknown target type %q", row.Type)}
	}

	switch row.Xslot.Kind {
	case "", m.XslotIgnore, m.XslotAbstract, m.XslotAbstractWholeSign:
	case m.XslotConcrete:
		if row.Xslot.N < 1 {
			return &m.InvalidTargetError{Target: row.Name, Reason: fmt.Sprintf("x-slot %d out of range", row.Xslot.N)}
		}
	default:
		return &m.InvalidTargetError{Target: row.Name, Reason: fmt.Sprintf("unknown x-slot type %q", row.Xslot.Kind)}
	}

	if row.Template.LocType != "" && row.Type != m.TargetLocation {
		return &m.InvalidTargetError{Target: row.Name, Reason: "location type on a non-location target"}
	}

	modType, _ := row.Type.ModuleType()

	tree, ok := mt.schemaTrees[modType]
	if !ok {
		if len(row.Template.Values) > 0 {
			return &m.InvalidTargetError{Target: row.Name, Reason: "values on a target without an option tree"}
		}

		return nil
	}

	editable := make(map[*ot.Node]bool)
	for _, n := range tree.FindItemsByRole(ot.RoleUserSpecifiable) {
		editable[n] = true
	}

	for _, path := range sortedKeys(row.Template.Values) {
		for _, n := range tree.FindItemsByPath(path) {
			if !editable[n] {
				return &m.InvalidTargetError{Target: row.Name, Reason: fmt.Sprintf("%q does not take a value", n.Path())}
			}
		}
	}

	return nil
}

func compileXslot(rows []m.SearchTarget) (signPredicate, error) {
	var want *m.XslotStructure

	for _, row := range rows {
		x := row.Template.Xslots
		if x == nil {
			continue
		}

		if want != nil && *want != *x {
			return nil, &m.ConflictingTargetError{Field: "xslots", Values: []string{want.String(), x.String()}}
		}

		want = x
	}

	return func(s *corpus.Sign) bool {
		return want == nil || s.Xslots == *want
	}, nil
}

func compileSignLevel(rows []m.SearchTarget) (signPredicate, error) {
	text := make(map[m.SignLevelField]string)
	binary := make(map[m.SignLevelField]bool)

	for _, row := range rows {
		for _, field := range sortedKeys(row.Template.Text) {
			value := row.Template.Text[field]
			if value == "" {
				continue
			}

			kind, ok := field.Kind()
			if !ok || kind == m.FieldBinary {
				return nil, &m.InvalidTargetError{Target: row.Name, Reason: fmt.Sprintf("%s is not a text field", field)}
			}

			if prev, seen := text[field]; seen && prev != value {
				return nil, &m.ConflictingTargetError{Field: string(field), Values: []string{prev, value}}
			}

			text[field] = value
		}

		for _, field := range sortedKeys(row.Template.Binary) {
			value := row.Template.Binary[field]

			if kind, ok := field.Kind(); !ok || kind != m.FieldBinary {
				return nil, &m.InvalidTargetError{Target: row.Name, Reason: fmt.Sprintf("%s is not a binary field", field)}
			}

			if prev, seen := binary[field]; seen && prev != value {
				return nil, &m.ConflictingTargetError{
					Field:  string(field),
					Values: []string{strconv.FormatBool(prev), strconv.FormatBool(value)},
				}
			}

			binary[field] = value
		}
	}

	return func(s *corpus.Sign) bool {
		for field, want := range text {
			if !fieldEquals(field, want, s.Info) {
				return false
			}
		}

		for field, want := range binary {
			if field.BinaryValue(s.Info) != want {
				return false
			}
		}

		return true
	}, nil
}

// fieldEquals compares numeric fields by value and text fields exactly.
func fieldEquals(field m.SignLevelField, want string, info m.SignLevelInfo) bool {
	got := field.TextValue(info)

	if kind, _ := field.Kind(); kind == m.FieldNumeric {
		w, werr := strconv.ParseFloat(strings.TrimSpace(want), 64)
		g, gerr := strconv.ParseFloat(got, 64)

		if werr == nil && gerr == nil {
			return w == g
		}
	}

	return got == want
}

func compileSignType(rows []m.SearchTarget) (signPredicate, error) {
	var want []string
	for _, row := range rows {
		want = append(want, row.Template.SignTypePaths...)
	}

	return func(s *corpus.Sign) bool {
		for _, p := range want {
			if !slices.Contains(s.SignType, p) {
				return false
			}
		}

		return true
	}, nil
}

func compileModuleRows(typ m.ModuleType) groupCompiler {
	return func(rows []m.SearchTarget) (signPredicate, error) {
		values := make(map[string]string)
		preds := make([]signPredicate, 0, len(rows))

		for _, row := range rows {
			for _, path := range sortedKeys(row.Template.Values) {
				value := row.Template.Values[path]
				if prev, seen := values[path]; seen && prev != value {
					return nil, &m.ConflictingTargetError{Field: path, Values: []string{prev, value}}
				}

				values[path] = value
			}

			preds = append(preds, moduleRowPredicate(typ, row))
		}

		return allOf(preds), nil
	}
}

func moduleRowPredicate(typ m.ModuleType, row m.SearchTarget) signPredicate {
	tpl := row.Template

	return func(s *corpus.Sign) bool {
		mods := compatibleModules(s.Modules(typ), row.Xslot)
		if len(mods) == 0 {
			return false
		}

		if tpl.Articulators != nil && !tpl.Articulators.IsEmpty() && !anyArticulators(mods, *tpl.Articulators) {
			return false
		}

		var checked []string
		for _, mod := range mods {
			checked = append(checked, mod.CheckedPaths()...)
		}

		for _, want := range tpl.Paths {
			if !slices.ContainsFunc(checked, func(p string) bool { return ot.HasPathSuffix(p, want) }) {
				return false
			}
		}

		for _, path := range sortedKeys(tpl.Values) {
			if !anyValue(mods, path, tpl.Values[path]) {
				return false
			}
		}

		if tpl.PhonLocs != nil {
			var have []string
			for _, mod := range mods {
				have = append(have, mod.PhonLocs.Display()...)
			}

			if !isSubset(tpl.PhonLocs.Display(), have) {
				return false
			}
		}

		if tpl.LocType != "" {
			var have []string
			for _, mod := range mods {
				have = append(have, mod.LocType.Display()...)
			}

			if !isSubset(tpl.LocType.Display(), have) {
				return false
			}
		}

		return true
	}
}

func compileRelation(rows []m.SearchTarget) (signPredicate, error) {
	preds := make([]signPredicate, 0, len(rows))

	for _, row := range rows {
		tpl := row.Template
		xslot := row.Xslot

		preds = append(preds, func(s *corpus.Sign) bool {
			for _, mod := range compatibleModules(s.Modules(m.ModuleRelation), xslot) {
				if tpl.Articulators != nil && !tpl.Articulators.IsEmpty() &&
					mod.Articulators.Display() != tpl.Articulators.Display() {
					continue
				}

				if tpl.Contact != nil && (mod.Relation == nil || mod.Relation.Contact != *tpl.Contact) {
					continue
				}

				return true
			}

			return false
		})
	}

	return allOf(preds), nil
}

func allOf(preds []signPredicate) signPredicate {
	return func(s *corpus.Sign) bool {
		for _, pred := range preds {
			if !pred(s) {
				return false
			}
		}

		return true
	}
}

func anyArticulators(mods []*corpus.Module, want m.Articulators) bool {
	for _, mod := range mods {
		if mod.Articulators.Display() == want.Display() {
			return true
		}
	}

	return false
}

func anyValue(mods []*corpus.Module, path, want string) bool {
	for _, mod := range mods {
		for p, v := range mod.Values() {
			if v == want && ot.HasPathSuffix(p, path) {
				return true
			}
		}
	}

	return false
}

func isSubset(want, have []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}

	return true
}

func sortedKeys[K ~string, V any](values map[K]V) []K {
	keys := make([]K, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}
