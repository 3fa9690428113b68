package majority

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultCoefficient is the majority share used when none is configured.
const DefaultCoefficient = 0.9

// Objective selects what the interval search minimises.
type Objective string

const (
	// ObjectiveCount looks for the fewest files.
	ObjectiveCount Objective = "count"
	// ObjectiveSpan looks for the narrowest byte-size band.
	ObjectiveSpan Objective = "span"
)

// Mass selects how an interval's share of the collection is measured.
type Mass string

const (
	// MassBytes weighs every file by its size.
	MassBytes Mass = "bytes"
	// MassFiles weighs every file as one.
	MassFiles Mass = "files"
)

// ParseObjective maps a config string to an Objective.
func ParseObjective(s string) (Objective, error) {
	switch o := Objective(strings.ToLower(strings.TrimSpace(s))); o {
	case ObjectiveCount, ObjectiveSpan:
		return o, nil
	case "":
		return ObjectiveCount, nil
	default:
		return "", fmt.Errorf("%w: %q (use count or span)", ErrUnknownObjective, s)
	}
}

// ParseMass maps a config string to a Mass.
func ParseMass(s string) (Mass, error) {
	switch m := Mass(strings.ToLower(strings.TrimSpace(s))); m {
	case MassBytes, MassFiles:
		return m, nil
	case "":
		return MassBytes, nil
	default:
		return "", fmt.Errorf("%w: %q (use bytes or files)", ErrUnknownMass, s)
	}
}

// Config holds the options of one analysis.
type Config struct {
	MajorityCoeff float64   `yaml:"majority_coeff"`
	Objective     Objective `yaml:"objective"`
	Mass          Mass      `yaml:"mass"`
}

// DefaultConfig returns a Config looking for the fewest files that hold 90%
// of the bytes.
func DefaultConfig() Config {
	return Config{
		MajorityCoeff: DefaultCoefficient,
		Objective:     ObjectiveCount,
		Mass:          MassBytes,
	}
}

// Validate checks the coefficient range and the enum values.
func (c Config) Validate() error {
	if !validCoefficient(c.MajorityCoeff) {
		return fmt.Errorf("%w: got %v", ErrInvalidCoefficient, c.MajorityCoeff)
	}
	if _, err := ParseObjective(string(c.Objective)); err != nil {
		return err
	}
	if _, err := ParseMass(string(c.Mass)); err != nil {
		return err
	}
	return nil
}

// Result is the outcome of a successful analysis.
type Result struct {
	Config     Config     `yaml:"config"`
	Sorted     []int64    `yaml:"-"`
	Interval   Interval   `yaml:"interval"`
	Projection Projection `yaml:"projection"`
}

// Analyzer runs analyses with a fixed Config. It keeps no other state and is
// safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// New validates cfg and returns an Analyzer for it. Empty Objective and Mass
// fall back to their defaults.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Objective, _ = ParseObjective(string(cfg.Objective))
	cfg.Mass, _ = ParseMass(string(cfg.Mass))
	return &Analyzer{cfg: cfg}, nil
}

// Config returns the configuration the analyzer was built with.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze sorts a copy of sizes and finds the interval selected by the
// configured objective. The caller's slice is left untouched.
func (a *Analyzer) Analyze(sizes []int64) (Result, error) {
	if len(sizes) == 0 {
		return Result{}, ErrEmptySequence
	}
	for i, s := range sizes {
		if s < 0 {
			return Result{}, fmt.Errorf("%w: %d at position %d", ErrNegativeSize, s, i)
		}
	}

	sorted := slices.Clone(sizes)
	slices.Sort(sorted)

	var ps PrefixSum
	switch a.cfg.Mass {
	case MassFiles:
		ps = CountPrefixSum(len(sorted))
	default:
		ps = BuildPrefixSum(sorted)
	}

	var (
		iv  Interval
		err error
	)
	switch a.cfg.Objective {
	case ObjectiveSpan:
		iv, err = MinSpanInterval(sorted, ps, a.cfg.MajorityCoeff)
	default:
		iv, err = MinCountInterval(ps, a.cfg.MajorityCoeff)
	}
	if err != nil {
		return Result{}, err
	}

	proj, err := Project(sorted, ps, iv)
	if err != nil {
		return Result{}, fmt.Errorf("project %s: %w", iv, err)
	}
	return Result{
		Config:     a.cfg,
		Sorted:     sorted,
		Interval:   iv,
		Projection: proj,
	}, nil
}
