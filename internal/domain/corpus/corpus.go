package corpus

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOverlappingEntryIDs is returned when merging corpora whose entry id
	// ranges intersect without asking for reassignment.
	ErrOverlappingEntryIDs = errors.New("entry id ranges overlap")
	// ErrDuplicateEntryID is returned when adding a sign whose id is taken.
	ErrDuplicateEntryID = errors.New("entry id already in use")
	// ErrSignNotFound is returned for unknown entry ids.
	ErrSignNotFound = errors.New("sign not found")
)

// Corpus is an ordered collection of signs with monotonically assigned
// entry ids starting at MinimumID.
type Corpus struct {
	Name      string
	Signs     []*Sign
	MinimumID int
	HighestID int
}

// New creates an empty corpus whose first entry id is minimumID.
func New(name string, minimumID int) *Corpus {
	if minimumID < 1 {
		minimumID = 1
	}

	return &Corpus{Name: name, MinimumID: minimumID, HighestID: minimumID - 1}
}

// NextEntryID is the id AddSign assigns to a sign without one.
func (c *Corpus) NextEntryID() int {
	return max(c.MinimumID, c.HighestID+1)
}

// AddSign appends s, assigning the next entry id when s has none.
func (c *Corpus) AddSign(s *Sign) error {
	if s.Info.EntryID == 0 {
		s.Info.EntryID = c.NextEntryID()
	} else if _, ok := c.FindByEntryID(s.Info.EntryID); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateEntryID, s.Info.EntryID)
	}

	c.Signs = append(c.Signs, s)
	c.HighestID = max(c.HighestID, s.Info.EntryID)
	c.MinimumID = min(c.MinimumID, s.Info.EntryID)

	return nil
}

// RemoveSign drops the sign with the given entry id. HighestID is kept so
// ids are never reused.
func (c *Corpus) RemoveSign(entryID int) error {
	for i, s := range c.Signs {
		if s.Info.EntryID == entryID {
			c.Signs = append(c.Signs[:i:i], c.Signs[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: %d", ErrSignNotFound, entryID)
}

// FindByEntryID returns the sign with the given entry id.
func (c *Corpus) FindByEntryID(entryID int) (*Sign, bool) {
	for _, s := range c.Signs {
		if s.Info.EntryID == entryID {
			return s, true
		}
	}

	return nil, false
}

// FindByGloss returns the signs whose gloss matches, ignoring case.
func (c *Corpus) FindByGloss(gloss string) []*Sign {
	var found []*Sign

	for _, s := range c.Signs {
		if strings.EqualFold(s.Info.Gloss, gloss) {
			found = append(found, s)
		}
	}

	return found
}

func (c *Corpus) idRange() (lo, hi int, ok bool) {
	if len(c.Signs) == 0 || c.HighestID < c.MinimumID {
		return 0, 0, false
	}

	return c.MinimumID, c.HighestID, true
}

// CheckMergeable reports ErrOverlappingEntryIDs when the entry id ranges of
// c and other intersect.
func (c *Corpus) CheckMergeable(other *Corpus) error {
	lo1, hi1, ok1 := c.idRange()
	lo2, hi2, ok2 := other.idRange()

	if !ok1 || !ok2 {
		return nil
	}

	if lo1 <= hi2 && lo2 <= hi1 {
		return fmt.Errorf("%w: %s [%d, %d] and %s [%d, %d]", ErrOverlappingEntryIDs,
			c.Name, lo1, hi1, other.Name, lo2, hi2)
	}

	return nil
}

// Merge appends copies of other's signs. With reassign, copied signs get
// fresh entry ids after c's; otherwise the id ranges must not overlap. On
// error c is left unchanged.
func (c *Corpus) Merge(other *Corpus, reassign bool) error {
	if !reassign {
		if err := c.CheckMergeable(other); err != nil {
			return err
		}
	}

	merged := *c
	merged.Signs = append(make([]*Sign, 0, len(c.Signs)+len(other.Signs)), c.Signs...)

	for _, s := range other.Signs {
		copied := s.Clone()
		if reassign {
			copied.Info.EntryID = 0
		}

		if err := merged.AddSign(copied); err != nil {
			return fmt.Errorf("failed to merge %s into %s: %w", other.Name, c.Name, err)
		}
	}

	*c = merged

	return nil
}
