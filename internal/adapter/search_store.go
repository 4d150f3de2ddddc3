package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// ErrInvalidSearchModel is wrapped by every decoding error of a search file.
var ErrInvalidSearchModel = errors.New("invalid search model")

// SearchStore persists and retrieves search models.
type SearchStore interface {
	Load(ctx context.Context, path string) (m.SearchModel, error)
	Save(path string, model m.SearchModel) error
}

// LocalSearchStore reads and writes YAML search files on the local disk.
type LocalSearchStore struct{}

// NewLocalSearchStore constructs a SearchStore backed by the filesystem.
func NewLocalSearchStore() SearchStore {
	return &LocalSearchStore{}
}

type searchModelRecord struct {
	MatchDegree string         `yaml:"match_degree,omitempty"`
	Targets     []targetRecord `yaml:"targets"`
}

type targetRecord struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	Xslot    string         `yaml:"xslot,omitempty"`
	Include  *bool          `yaml:"include,omitempty"`
	Negative bool           `yaml:"negative,omitempty"`
	Template templateRecord `yaml:"template"`
}

type templateRecord struct {
	Xslots       *xslotRecord        `yaml:"xslots,omitempty"`
	Text         map[string]string   `yaml:"text,omitempty"`
	Binary       map[string]bool     `yaml:"binary,omitempty"`
	SignType     []string            `yaml:"signtype,omitempty"`
	Articulators *articulatorsRecord `yaml:"articulators,omitempty"`
	Paths        []string            `yaml:"paths,omitempty"`
	Values       map[string]string   `yaml:"values,omitempty"`
	PhonLocs     *phonLocsRecord     `yaml:"phonlocs,omitempty"`
	LocType      string              `yaml:"loctype,omitempty"`
	Contact      *bool               `yaml:"contact,omitempty"`
}

// Load reads a search model. Rows without an include key are included.
func (s *LocalSearchStore) Load(ctx context.Context, path string) (m.SearchModel, error) {
	if err := ctx.Err(); err != nil {
		return m.SearchModel{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return m.SearchModel{}, fmt.Errorf("failed to read search model %s: %w", path, err)
	}

	var rec searchModelRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return m.SearchModel{}, fmt.Errorf("failed to parse search model %s: %w: %w", path, ErrInvalidSearchModel, err)
	}

	model, err := fromSearchModelRecord(rec)
	if err != nil {
		return m.SearchModel{}, fmt.Errorf("failed to load search model %s: %w", path, err)
	}

	return model, nil
}

// Save writes model to path atomically.
func (s *LocalSearchStore) Save(path string, model m.SearchModel) error {
	data, err := yaml.Marshal(toSearchModelRecord(model))
	if err != nil {
		return fmt.Errorf("failed to encode search model: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write search model %s: %w", path, err)
	}

	return nil
}

func fromSearchModelRecord(rec searchModelRecord) (m.SearchModel, error) {
	model := m.SearchModel{MatchDegree: m.MatchAll}

	if rec.MatchDegree != "" {
		degree, err := m.ParseMatchDegree(rec.MatchDegree)
		if err != nil {
			return m.SearchModel{}, fmt.Errorf("%w: %w", ErrInvalidSearchModel, err)
		}

		model.MatchDegree = degree
	}

	for i, tr := range rec.Targets {
		x, err := m.ParseXslotType(tr.Xslot)
		if err != nil {
			return m.SearchModel{}, fmt.Errorf("%w: target %d (%s): %w", ErrInvalidSearchModel, i+1, tr.Name, err)
		}

		tpl, err := fromTemplateRecord(tr.Template)
		if err != nil {
			return m.SearchModel{}, fmt.Errorf("%w: target %d (%s): %w", ErrInvalidSearchModel, i+1, tr.Name, err)
		}

		include := true
		if tr.Include != nil {
			include = *tr.Include
		}

		model.Targets = append(model.Targets, m.SearchTarget{
			Name:     tr.Name,
			Type:     m.TargetType(tr.Type),
			Xslot:    x,
			Template: tpl,
			Include:  include,
			Negative: tr.Negative,
		})
	}

	return model, nil
}

func fromTemplateRecord(rec templateRecord) (m.Template, error) {
	tpl := m.Template{
		SignTypePaths: rec.SignType,
		Paths:         rec.Paths,
		Values:        rec.Values,
		LocType:       m.LocType(rec.LocType),
		Contact:       rec.Contact,
	}

	if rec.Xslots != nil {
		xs := m.XslotStructure{Number: rec.Xslots.Number}

		if rec.Xslots.Additional != "" {
			frac, err := m.ParseFraction(rec.Xslots.Additional)
			if err != nil {
				return m.Template{}, err
			}

			xs.Additional = frac
		}

		tpl.Xslots = &xs
	}

	for name, v := range rec.Text {
		if tpl.Text == nil {
			tpl.Text = make(map[m.SignLevelField]string, len(rec.Text))
		}

		tpl.Text[m.SignLevelField(name)] = v
	}

	for name, v := range rec.Binary {
		if tpl.Binary == nil {
			tpl.Binary = make(map[m.SignLevelField]bool, len(rec.Binary))
		}

		tpl.Binary[m.SignLevelField(name)] = v
	}

	if rec.Articulators != nil {
		a := m.NewArticulators(m.ArticulatorKind(rec.Articulators.Kind), rec.Articulators.Indices...)
		tpl.Articulators = &a
	}

	if rec.PhonLocs != nil {
		tpl.PhonLocs = &m.PhonLocs{
			Phonological: rec.PhonLocs.Phonological,
			Major:        rec.PhonLocs.Major,
			Minor:        rec.PhonLocs.Minor,
			Phonetic:     rec.PhonLocs.Phonetic,
		}
	}

	return tpl, nil
}

func toSearchModelRecord(model m.SearchModel) searchModelRecord {
	rec := searchModelRecord{MatchDegree: string(model.MatchDegree)}

	for _, t := range model.Targets {
		include := t.Include
		tpl := t.Template

		tr := targetRecord{
			Name:     t.Name,
			Type:     string(t.Type),
			Include:  &include,
			Negative: t.Negative,
			Template: templateRecord{
				SignType: tpl.SignTypePaths,
				Paths:    tpl.Paths,
				Values:   tpl.Values,
				LocType:  string(tpl.LocType),
				Contact:  tpl.Contact,
			},
		}

		if t.Xslot.Kind != "" && t.Xslot.Kind != m.XslotIgnore {
			tr.Xslot = t.Xslot.String()
		}

		if tpl.Xslots != nil {
			tr.Template.Xslots = &xslotRecord{Number: tpl.Xslots.Number}
			if !tpl.Xslots.Additional.IsZero() {
				tr.Template.Xslots.Additional = tpl.Xslots.Additional.String()
			}
		}

		for field, v := range tpl.Text {
			if tr.Template.Text == nil {
				tr.Template.Text = make(map[string]string, len(tpl.Text))
			}

			tr.Template.Text[string(field)] = v
		}

		for field, v := range tpl.Binary {
			if tr.Template.Binary == nil {
				tr.Template.Binary = make(map[string]bool, len(tpl.Binary))
			}

			tr.Template.Binary[string(field)] = v
		}

		if tpl.Articulators != nil {
			tr.Template.Articulators = &articulatorsRecord{
				Kind:    string(tpl.Articulators.Kind),
				Indices: tpl.Articulators.Selected(),
			}
		}

		if tpl.PhonLocs != nil {
			tr.Template.PhonLocs = &phonLocsRecord{
				Phonological: tpl.PhonLocs.Phonological,
				Major:        tpl.PhonLocs.Major,
				Minor:        tpl.PhonLocs.Minor,
				Phonetic:     tpl.PhonLocs.Phonetic,
			}
		}

		rec.Targets = append(rec.Targets, tr)
	}

	return rec
}
