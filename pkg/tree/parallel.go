package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParallelFlags reports whether a tree-pass phase may fan its work out
// across goroutines. Composite lists query the flags fresh at every level,
// so an implementation is free to flip phases between passes.
//
// Implementations must be safe for concurrent reads.
type ParallelFlags interface {
	Enabled(phase Phase) bool
}

// ParallelConfig is an immutable ParallelFlags backed by a fixed bitset.
// The zero value disables every phase, which keeps all traversal
// sequential and deterministic.
type ParallelConfig struct {
	enabled [numPhases]bool
}

// NewParallelConfig enables the given phases and disables the rest.
func NewParallelConfig(phases ...Phase) ParallelConfig {
	var cfg ParallelConfig
	for _, p := range phases {
		if p >= 0 && p < numPhases {
			cfg.enabled[p] = true
		}
	}
	return cfg
}

// AllParallel enables every phase.
func AllParallel() ParallelConfig {
	return NewParallelConfig(Phases()...)
}

// Enabled reports whether the phase may run in parallel.
func (c ParallelConfig) Enabled(phase Phase) bool {
	if phase < 0 || phase >= numPhases {
		return false
	}
	return c.enabled[phase]
}

// parallelYAML mirrors the "parallel" mapping in ripple.yaml.
type parallelYAML struct {
	Parallel map[string]bool `yaml:"parallel"`
}

// ParallelConfigFromYAML parses a phase-name -> bool mapping:
//
//	parallel:
//	  render: true
//	  update: false
//
// Unknown phase names are rejected so a typo cannot silently serialize
// a phase the caller meant to parallelize.
func ParallelConfigFromYAML(data []byte) (ParallelConfig, error) {
	var raw parallelYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ParallelConfig{}, fmt.Errorf("failed to parse parallel config: %w", err)
	}
	var cfg ParallelConfig
	for name, on := range raw.Parallel {
		phase, ok := PhaseFromName(name)
		if !ok {
			return ParallelConfig{}, fmt.Errorf("unknown phase %q in parallel config", name)
		}
		cfg.enabled[phase] = on
	}
	return cfg, nil
}
