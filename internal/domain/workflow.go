// Package domain contains sign comparison, corpus search and the command workflow.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/adapter"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/controller"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/schemas"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

var (
	// ErrAmbiguousSign is returned when a gloss names more than one sign.
	ErrAmbiguousSign = errors.New("ambiguous sign")
	// ErrUnknownSchema is returned for schema names without a built-in tree.
	ErrUnknownSchema = errors.New("unknown schema")
	// ErrNoCorpora is returned when a search is given no corpus file.
	ErrNoCorpora = errors.New("no corpus files given")
)

// CompareArgs names two signs by gloss or entry id. Sign2 is looked up in
// OtherCorpus when set, otherwise in Corpus.
type CompareArgs struct {
	Corpus      string
	OtherCorpus string
	Sign1       string
	Sign2       string
}

// SearchArgs runs the search model at Model against every corpus file named
// by Corpora. A Corpora entry may be a file, a directory or "dir/..." for
// every corpus file below dir. A non-empty MatchDegree overrides the model's
// own.
type SearchArgs struct {
	Corpora     []string
	Model       string
	MatchDegree m.MatchDegree
	ExportYAML  string
	ExportDB    string
}

// SchemaArgs selects a built-in schema by name.
type SchemaArgs struct {
	Name string
}

// ShowArgs names a sign of a corpus.
type ShowArgs struct {
	Corpus string
	Sign   string
}

// MergeArgs merges Source into Target and writes the result to Output, or
// back to Target when Output is empty.
type MergeArgs struct {
	Target   string
	Source   string
	Output   string
	Reassign bool
}

// Workflow defines the command-level operations on corpora.
type Workflow interface {
	Compare(ctx context.Context, args CompareArgs) error
	Search(ctx context.Context, args SearchArgs) error
	Schema(ctx context.Context, args SchemaArgs) error
	Show(ctx context.Context, args ShowArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*workflow)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) WorkflowOption {
	return func(w *workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSignEntryIDDigits sets the zero-padding of entry ids in compare and
// show output.
func WithSignEntryIDDigits(digits int) WorkflowOption {
	return func(w *workflow) {
		w.digits = digits
	}
}

type workflow struct {
	files    adapter.CorpusFSAdapter
	corpora  adapter.CorpusStore
	searches adapter.SearchStore
	results  adapter.ResultStore
	ui       controller.UI
	comparer Comparer
	matcher  Matcher
	logger   *slog.Logger
	digits   int
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	files adapter.CorpusFSAdapter,
	corpora adapter.CorpusStore,
	searches adapter.SearchStore,
	results adapter.ResultStore,
	ui controller.UI,
	comparer Comparer,
	matcher Matcher,
	opts ...WorkflowOption,
) Workflow {
	w := &workflow{
		files:    files,
		corpora:  corpora,
		searches: searches,
		results:  results,
		ui:       ui,
		comparer: comparer,
		matcher:  matcher,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		digits:   4,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Compare loads both signs and displays their structural diff.
func (w *workflow) Compare(ctx context.Context, args CompareArgs) error {
	paths := []string{args.Corpus}
	if args.OtherCorpus != "" && args.OtherCorpus != args.Corpus {
		paths = append(paths, args.OtherCorpus)
	}

	loaded, err := w.corpora.LoadAll(ctx, paths...)
	if err != nil {
		return err
	}

	sign1, err := findSign(loaded[0], args.Sign1)
	if err != nil {
		return err
	}

	sign2, err := findSign(loaded[len(loaded)-1], args.Sign2)
	if err != nil {
		return err
	}

	comparison := w.comparer.Compare(sign1, sign2)

	w.logger.Debug("signs compared",
		slog.String("sign1", sign1.Info.Gloss),
		slog.String("sign2", sign2.Info.Gloss),
		slog.Int("modules1", len(comparison.Sign1)),
		slog.Int("modules2", len(comparison.Sign2)),
		slog.Int("pending", len(comparison.Pending)))

	return w.ui.DisplayComparison(sign1.Ref(w.digits), sign2.Ref(w.digits), comparison)
}

// Search runs the model against each corpus concurrently and displays the
// entries in corpus order, then writes the requested exports.
func (w *workflow) Search(ctx context.Context, args SearchArgs) error {
	if len(args.Corpora) == 0 {
		return ErrNoCorpora
	}

	model, err := w.searches.Load(ctx, args.Model)
	if err != nil {
		return err
	}

	if args.MatchDegree != "" {
		model.MatchDegree = args.MatchDegree
	}

	paths, err := w.files.Find(args.Corpora)
	if err != nil {
		return err
	}

	loaded, err := w.corpora.LoadAll(ctx, paths...)
	if err != nil {
		return err
	}

	perCorpus := make([]m.ResultSet, len(loaded))
	g, gctx := errgroup.WithContext(ctx)

	for i, c := range loaded {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rs, err := w.matcher.Search(model, c)
			if err != nil {
				return fmt.Errorf("failed to search %s: %w", c.Name, err)
			}

			perCorpus[i] = rs

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var rs m.ResultSet
	for _, part := range perCorpus {
		rs = rs.Merge(part)
	}

	w.logger.Info("search finished",
		slog.String("model", args.Model),
		slog.String("match_degree", string(model.MatchDegree)),
		slog.Int("corpora", len(loaded)),
		slog.Int("entries", len(rs.Entries)))

	if err := w.ui.DisplayResults(rs); err != nil {
		return err
	}

	return w.export(ctx, args, rs)
}

func (w *workflow) export(ctx context.Context, args SearchArgs, rs m.ResultSet) error {
	if args.ExportYAML != "" {
		if err := w.results.ExportYAML(args.ExportYAML, rs); err != nil {
			return err
		}

		w.ui.DisplayMessage("results written to %s", args.ExportYAML)
	}

	if args.ExportDB != "" {
		runID, err := w.results.ExportSQLite(ctx, args.ExportDB, rs)
		if err != nil {
			return fmt.Errorf("failed to export results to %s: %w", args.ExportDB, err)
		}

		w.logger.Debug("results exported", slog.String("db", args.ExportDB), slog.String("run", runID))
		w.ui.DisplayMessage("results stored in %s as run %s", args.ExportDB, runID)
	}

	return nil
}

// Schema displays a built-in option tree.
func (w *workflow) Schema(_ context.Context, args SchemaArgs) error {
	schema, ok := schemas.ByName(args.Name)
	if !ok {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownSchema, args.Name, strings.Join(schemas.Names(), ", "))
	}

	tree, err := ot.New(schema)
	if err != nil {
		return fmt.Errorf("failed to build schema %s: %w", args.Name, err)
	}

	return w.ui.DisplaySchema(schema.Name, Outline(tree))
}

// Show displays one sign and its modules.
func (w *workflow) Show(ctx context.Context, args ShowArgs) error {
	c, err := w.corpora.Load(ctx, args.Corpus)
	if err != nil {
		return err
	}

	s, err := findSign(c, args.Sign)
	if err != nil {
		return err
	}

	return w.ui.DisplaySign(SummarizeSign(c.Name, s, w.digits))
}

// Merge adds the signs of Source to Target and saves the result.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	loaded, err := w.corpora.LoadAll(ctx, args.Target, args.Source)
	if err != nil {
		return err
	}

	target, source := loaded[0], loaded[1]
	before := len(target.Signs)

	if err := target.Merge(source, args.Reassign); err != nil {
		return fmt.Errorf("failed to merge %s into %s: %w", args.Source, args.Target, err)
	}

	output := args.Output
	if output == "" {
		output = args.Target
	}

	if err := w.corpora.Save(output, target); err != nil {
		return err
	}

	w.logger.Info("corpora merged",
		slog.String("target", args.Target),
		slog.String("source", args.Source),
		slog.Bool("reassign", args.Reassign),
		slog.Int("added", len(target.Signs)-before))
	w.ui.DisplayMessage("merged %d sign(s) from %s into %s (%d total)",
		len(target.Signs)-before, source.Name, output, len(target.Signs))

	return nil
}

// findSign resolves key as an entry id first, then as a case-insensitive
// gloss that must name exactly one sign.
func findSign(c *corpus.Corpus, key string) (*corpus.Sign, error) {
	if id, err := strconv.Atoi(key); err == nil {
		if s, ok := c.FindByEntryID(id); ok {
			return s, nil
		}
	}

	matches := c.FindByGloss(key)

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q in %s", corpus.ErrSignNotFound, key, c.Name)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, s := range matches {
			ids = append(ids, strconv.Itoa(s.Info.EntryID))
		}

		return nil, fmt.Errorf("%w: %q in %s matches entries %s", ErrAmbiguousSign, key, c.Name, strings.Join(ids, ", "))
	}
}
