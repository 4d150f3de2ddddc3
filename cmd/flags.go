package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/adapter"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

var (
	_ pflag.Value = (*matchDegreeValue)(nil)
	_ pflag.Value = (*outputValue)(nil)
)

// matchDegreeValue is a pflag.Value accepting "all" or "any". The empty
// value defers to the search model and config.
type matchDegreeValue m.MatchDegree

func (v *matchDegreeValue) String() string { return string(*v) }

func (v *matchDegreeValue) Set(s string) error {
	degree, err := m.ParseMatchDegree(s)
	if err != nil {
		return err
	}

	*v = matchDegreeValue(degree)

	return nil
}

func (v *matchDegreeValue) Type() string { return "degree" }

// outputValue is a pflag.Value accepting the output modes.
type outputValue string

func (v *outputValue) String() string { return string(*v) }

func (v *outputValue) Set(s string) error {
	switch s {
	case adapter.OutputAuto, adapter.OutputSimple, adapter.OutputTUI:
		*v = outputValue(s)
		return nil
	default:
		return fmt.Errorf("must be %q, %q or %q", adapter.OutputAuto, adapter.OutputSimple, adapter.OutputTUI)
	}
}

func (v *outputValue) Type() string { return "mode" }
