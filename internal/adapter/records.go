package adapter

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/schemas"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// ErrInvalidRecord is wrapped by every decoding error of a corpus file.
var ErrInvalidRecord = errors.New("invalid corpus record")

type corpusRecord struct {
	Name      string       `yaml:"name"`
	MinimumID int          `yaml:"minimum_id"`
	HighestID int          `yaml:"highest_id"`
	Signs     []signRecord `yaml:"signs"`
}

type signRecord struct {
	Info     signInfoRecord `yaml:"info"`
	SignType []string       `yaml:"signtype,omitempty"`
	Xslots   xslotRecord    `yaml:"xslots"`
	Modules  []moduleRecord `yaml:"modules,omitempty"`
}

type signInfoRecord struct {
	EntryID       int       `yaml:"entryid"`
	Gloss         string    `yaml:"gloss"`
	IDGloss       string    `yaml:"idgloss,omitempty"`
	Lemma         string    `yaml:"lemma,omitempty"`
	Source        string    `yaml:"source,omitempty"`
	Signer        string    `yaml:"signer,omitempty"`
	Frequency     float64   `yaml:"frequency,omitempty"`
	Coder         string    `yaml:"coder,omitempty"`
	Created       time.Time `yaml:"created,omitempty"`
	Modified      time.Time `yaml:"modified,omitempty"`
	Note          string    `yaml:"note,omitempty"`
	Fingerspelled bool      `yaml:"fingerspelled,omitempty"`
	CompoundSign  bool      `yaml:"compoundsign,omitempty"`
	HandDominance string    `yaml:"handdominance,omitempty"`
}

type xslotRecord struct {
	Number     int    `yaml:"number"`
	Additional string `yaml:"additional,omitempty"`
}

// moduleRecord stores timing intervals as [startWhole, startFrac, endWhole,
// endFrac] quadruples.
type moduleRecord struct {
	UniqueID        string             `yaml:"uniqueid"`
	Type            string             `yaml:"type"`
	Articulators    articulatorsRecord `yaml:"articulators"`
	InPhase         int                `yaml:"inphase"`
	TimingIntervals [][]string         `yaml:"timingintervals,omitempty"`
	PhonLocs        phonLocsRecord     `yaml:"phonlocs,omitempty"`
	LocType         string             `yaml:"loctype,omitempty"`
	Relation        *relationRecord    `yaml:"relation,omitempty"`
	AddedInfo       addedInfoRecord    `yaml:"addedinfo,omitempty"`
	Tree            *treeRecord        `yaml:"tree,omitempty"`
}

type articulatorsRecord struct {
	Kind    string `yaml:"kind,omitempty"`
	Indices []int  `yaml:"indices,flow,omitempty"`
}

type phonLocsRecord struct {
	Phonological bool `yaml:"phonological,omitempty"`
	Major        bool `yaml:"major,omitempty"`
	Minor        bool `yaml:"minor,omitempty"`
	Phonetic     bool `yaml:"phonetic,omitempty"`
}

type relationRecord struct {
	X       string `yaml:"x,omitempty"`
	Y       string `yaml:"y,omitempty"`
	Contact bool   `yaml:"contact"`
}

type annotationRecord struct {
	Flag bool   `yaml:"flag,omitempty"`
	Note string `yaml:"note,omitempty"`
}

type addedInfoRecord struct {
	Flags  map[string]annotationRecord `yaml:"flags,omitempty"`
	Iconic bool                        `yaml:"iconic,omitempty"`
}

type treeRecord struct {
	CheckStates map[string]string          `yaml:"checkstates,omitempty"`
	AddedInfo   map[string]addedInfoRecord `yaml:"addedinfo,omitempty"`
	Values      map[string]string          `yaml:"values,omitempty"`
}

func toCorpusRecord(c *corpus.Corpus) corpusRecord {
	rec := corpusRecord{
		Name:      c.Name,
		MinimumID: c.MinimumID,
		HighestID: c.HighestID,
		Signs:     make([]signRecord, 0, len(c.Signs)),
	}

	for _, s := range c.Signs {
		rec.Signs = append(rec.Signs, toSignRecord(s))
	}

	return rec
}

func toSignRecord(s *corpus.Sign) signRecord {
	info := s.Info
	rec := signRecord{
		Info: signInfoRecord{
			EntryID:       info.EntryID,
			Gloss:         info.Gloss,
			IDGloss:       info.IDGloss,
			Lemma:         info.Lemma,
			Source:        info.Source,
			Signer:        info.Signer,
			Frequency:     info.Frequency,
			Coder:         info.Coder,
			Created:       info.Created,
			Modified:      info.Modified,
			Note:          info.Note,
			Fingerspelled: info.Fingerspelled,
			CompoundSign:  info.CompoundSign,
			HandDominance: info.HandDominance,
		},
		SignType: s.SignType,
		Xslots:   xslotRecord{Number: s.Xslots.Number},
	}

	if !s.Xslots.Additional.IsZero() {
		rec.Xslots.Additional = s.Xslots.Additional.String()
	}

	for _, mod := range s.AllModules() {
		rec.Modules = append(rec.Modules, toModuleRecord(mod))
	}

	return rec
}

func toModuleRecord(mod *corpus.Module) moduleRecord {
	rec := moduleRecord{
		UniqueID: mod.UniqueID,
		Type:     string(mod.Type),
		Articulators: articulatorsRecord{
			Kind:    string(mod.Articulators.Kind),
			Indices: mod.Articulators.Selected(),
		},
		InPhase: int(mod.InPhase),
		PhonLocs: phonLocsRecord{
			Phonological: mod.PhonLocs.Phonological,
			Major:        mod.PhonLocs.Major,
			Minor:        mod.PhonLocs.Minor,
			Phonetic:     mod.PhonLocs.Phonetic,
		},
		LocType:   string(mod.LocType),
		AddedInfo: toAddedInfoRecord(mod.AddedInfo),
	}

	for _, iv := range mod.TimingIntervals {
		rec.TimingIntervals = append(rec.TimingIntervals, []string{
			strconv.Itoa(iv.Start.Whole), iv.Start.Frac.String(),
			strconv.Itoa(iv.End.Whole), iv.End.Frac.String(),
		})
	}

	if mod.Relation != nil {
		rec.Relation = &relationRecord{X: mod.Relation.X, Y: mod.Relation.Y, Contact: mod.Relation.Contact}
	}

	if mod.Tree != nil {
		st := mod.Tree.Serialize()
		tree := &treeRecord{Values: st.Values}

		for path, state := range st.CheckStates {
			if tree.CheckStates == nil {
				tree.CheckStates = make(map[string]string, len(st.CheckStates))
			}

			tree.CheckStates[path] = state.String()
		}

		for path, info := range st.AddedInfo {
			if tree.AddedInfo == nil {
				tree.AddedInfo = make(map[string]addedInfoRecord, len(st.AddedInfo))
			}

			tree.AddedInfo[path] = toAddedInfoRecord(info)
		}

		rec.Tree = tree
	}

	return rec
}

func toAddedInfoRecord(info m.AddedInfo) addedInfoRecord {
	rec := addedInfoRecord{Iconic: info.Iconic()}

	for _, flag := range m.InfoFlags() {
		ann := info.Get(flag)
		if !ann.Flag && ann.Note == "" {
			continue
		}

		if rec.Flags == nil {
			rec.Flags = make(map[string]annotationRecord)
		}

		rec.Flags[flag.String()] = annotationRecord{Flag: ann.Flag, Note: ann.Note}
	}

	return rec
}

func fromCorpusRecord(rec corpusRecord) (*corpus.Corpus, error) {
	c := corpus.New(rec.Name, rec.MinimumID)

	for i, sr := range rec.Signs {
		s, err := fromSignRecord(sr)
		if err != nil {
			return nil, fmt.Errorf("sign %d (%s): %w", i+1, sr.Info.Gloss, err)
		}

		if err := c.AddSign(s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
	}

	c.HighestID = max(c.HighestID, rec.HighestID)

	return c, nil
}

func fromSignRecord(rec signRecord) (*corpus.Sign, error) {
	info := rec.Info
	s := corpus.NewSign(m.SignLevelInfo{
		EntryID:       info.EntryID,
		Gloss:         info.Gloss,
		IDGloss:       info.IDGloss,
		Lemma:         info.Lemma,
		Source:        info.Source,
		Signer:        info.Signer,
		Frequency:     info.Frequency,
		Coder:         info.Coder,
		Created:       info.Created,
		Modified:      info.Modified,
		Note:          info.Note,
		Fingerspelled: info.Fingerspelled,
		CompoundSign:  info.CompoundSign,
		HandDominance: info.HandDominance,
	})
	s.SignType = rec.SignType
	s.Xslots.Number = rec.Xslots.Number

	if rec.Xslots.Additional != "" {
		frac, err := m.ParseFraction(rec.Xslots.Additional)
		if err != nil {
			return nil, fmt.Errorf("%w: x-slots: %w", ErrInvalidRecord, err)
		}

		s.Xslots.Additional = frac
	}

	for _, mr := range rec.Modules {
		mod, err := fromModuleRecord(mr)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mr.UniqueID, err)
		}

		if err := s.AddModule(mod); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
	}

	return s, nil
}

func fromModuleRecord(rec moduleRecord) (*corpus.Module, error) {
	mod := &corpus.Module{
		UniqueID:     rec.UniqueID,
		Type:         m.ModuleType(rec.Type),
		Articulators: m.NewArticulators(m.ArticulatorKind(rec.Articulators.Kind), rec.Articulators.Indices...),
		InPhase:      m.InPhase(rec.InPhase),
		PhonLocs: m.PhonLocs{
			Phonological: rec.PhonLocs.Phonological,
			Major:         rec.PhonLocs.Major,
			Minor:         rec.PhonLocs.Minor,
			Phonetic:      rec.PhonLocs.Phonetic,
		},
		LocType: m.LocType(rec.LocType),
	}

	if mod.UniqueID == "" {
		mod.UniqueID = uuid.NewString()
	}

	if !mod.InPhase.Valid() {
		return nil, fmt.Errorf("%w: inphase %d", ErrInvalidRecord, rec.InPhase)
	}

	for _, raw := range rec.TimingIntervals {
		iv, err := parseInterval(raw)
		if err != nil {
			return nil, err
		}

		mod.TimingIntervals = append(mod.TimingIntervals, iv)
	}

	info, err := fromAddedInfoRecord(rec.AddedInfo)
	if err != nil {
		return nil, err
	}

	mod.AddedInfo = info

	switch {
	case rec.Relation != nil:
		mod.Relation = &m.RelationSpec{X: rec.Relation.X, Y: rec.Relation.Y, Contact: rec.Relation.Contact}
	case mod.Type == m.ModuleRelation:
		mod.Relation = &m.RelationSpec{}
	}

	if schema, ok := schemas.ForModuleType(mod.Type); ok {
		mod.Tree = ot.MustNew(schema)

		if rec.Tree != nil {
			st, err := fromTreeRecord(*rec.Tree)
			if err != nil {
				return nil, err
			}

			if err := mod.Tree.Restore(st); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
			}
		}
	}

	return mod, nil
}

func parseInterval(raw []string) (m.TimingInterval, error) {
	if len(raw) != 4 {
		return m.TimingInterval{}, fmt.Errorf("%w: timing interval %v needs 4 fields", ErrInvalidRecord, raw)
	}

	start, err := parsePoint(raw[0], raw[1])
	if err != nil {
		return m.TimingInterval{}, err
	}

	end, err := parsePoint(raw[2], raw[3])
	if err != nil {
		return m.TimingInterval{}, err
	}

	iv, err := m.NewTimingInterval(start, end)
	if err != nil {
		return m.TimingInterval{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	return iv, nil
}

func parsePoint(whole, frac string) (m.TimingPoint, error) {
	w, err := strconv.Atoi(whole)
	if err != nil {
		return m.TimingPoint{}, fmt.Errorf("%w: timing point %q: %w", ErrInvalidRecord, whole, err)
	}

	f, err := m.ParseFraction(frac)
	if err != nil {
		return m.TimingPoint{}, fmt.Errorf("%w: timing point %q: %w", ErrInvalidRecord, frac, err)
	}

	p := m.TimingPoint{Whole: w, Frac: f}
	if err := p.Validate(); err != nil {
		return m.TimingPoint{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	return p, nil
}

func fromAddedInfoRecord(rec addedInfoRecord) (m.AddedInfo, error) {
	info := m.AddedInfo{}.WithIconic(rec.Iconic)

	for name, ann := range rec.Flags {
		flag, ok := m.ParseInfoFlag(name)
		if !ok {
			return m.AddedInfo{}, fmt.Errorf("%w: unknown annotation %q", ErrInvalidRecord, name)
		}

		info = info.With(flag, m.Annotation{Flag: ann.Flag, Note: ann.Note})
	}

	return info, nil
}

func fromTreeRecord(rec treeRecord) (ot.State, error) {
	st := ot.State{
		CheckStates: make(map[string]ot.CheckState, len(rec.CheckStates)),
		AddedInfo:   make(map[string]m.AddedInfo, len(rec.AddedInfo)),
		Values:      rec.Values,
	}

	for path, name := range rec.CheckStates {
		state, ok := ot.ParseCheckState(name)
		if !ok {
			return ot.State{}, fmt.Errorf("%w: check state %q at %q", ErrInvalidRecord, name, path)
		}

		st.CheckStates[path] = state
	}

	for path, ir := range rec.AddedInfo {
		info, err := fromAddedInfoRecord(ir)
		if err != nil {
			return ot.State{}, err
		}

		st.AddedInfo[path] = info
	}

	return st, nil
}
