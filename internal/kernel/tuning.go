// Package kernel implements the generic parallel row-reduction engine: a
// tiling planner that picks a decomposition for an (A rows x B columns)
// matrix view, and an executor that collapses each row to one value with an
// arbitrary associative, commutative combining operator.
package kernel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the launch constants of the reduction engine. They describe
// the simulated device: how many threads cooperate per group, the lockstep
// subgroup width, and the per-row thread cap. They are launch-time constants,
// not runtime-discovered.
type Tuning struct {
	MaxThreadsPerRow int `yaml:"max_threads_per_row"`
	SubgroupSize     int `yaml:"subgroup_size"`
	GroupSizeLog2    int `yaml:"group_size_log2"`
}

// DefaultTuning returns the stock configuration: 64 threads per row at most,
// subgroups of 32 lanes, groups of 256 threads.
func DefaultTuning() Tuning {
	return Tuning{
		MaxThreadsPerRow: 64,
		SubgroupSize:     32,
		GroupSizeLog2:    8,
	}
}

// GroupSize returns the number of threads per group.
func (t Tuning) GroupSize() int {
	return 1 << t.GroupSizeLog2
}

// Validate checks the power-of-two and ordering invariants the planner and
// executor rely on. SubgroupSize must divide MaxThreadsPerRow, which in turn
// must divide the group size; with everything a power of two the three caps
// nest cleanly and the planner's candidate search is well defined.
func (t Tuning) Validate() error {
	if t.GroupSizeLog2 < 0 || t.GroupSizeLog2 > 16 {
		return fmt.Errorf("group_size_log2 %d out of range [0, 16]", t.GroupSizeLog2)
	}
	if t.MaxThreadsPerRow < 1 || !isPow2(t.MaxThreadsPerRow) {
		return fmt.Errorf("max_threads_per_row %d must be a power of two", t.MaxThreadsPerRow)
	}
	if t.SubgroupSize < 1 || !isPow2(t.SubgroupSize) {
		return fmt.Errorf("subgroup_size %d must be a power of two", t.SubgroupSize)
	}
	if t.SubgroupSize > t.MaxThreadsPerRow {
		return fmt.Errorf("subgroup_size %d exceeds max_threads_per_row %d", t.SubgroupSize, t.MaxThreadsPerRow)
	}
	if t.MaxThreadsPerRow > t.GroupSize() {
		return fmt.Errorf("max_threads_per_row %d exceeds group size %d", t.MaxThreadsPerRow, t.GroupSize())
	}
	return nil
}

// LoadTuning reads launch constants from a YAML file.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	tun := DefaultTuning()
	if err := yaml.Unmarshal(data, &tun); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if err := tun.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return tun, nil
}

// TuningFromEnv returns the tuning named by the RILL_TUNING environment
// variable, or the default configuration when the variable is unset. A file
// that fails to load is a deployment bug, reported fatally.
func TuningFromEnv() Tuning {
	path := os.Getenv("RILL_TUNING")
	if path == "" {
		return DefaultTuning()
	}
	tun, err := LoadTuning(path)
	if err != nil {
		panic(fmt.Sprintf("kernel: RILL_TUNING: %v", err))
	}
	return tun
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
