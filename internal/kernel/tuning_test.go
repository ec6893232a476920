package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTuningValidate(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	cases := map[string]Tuning{
		"non-pow2 threads":      {MaxThreadsPerRow: 48, SubgroupSize: 16, GroupSizeLog2: 8},
		"non-pow2 subgroup":     {MaxThreadsPerRow: 64, SubgroupSize: 24, GroupSizeLog2: 8},
		"subgroup over threads": {MaxThreadsPerRow: 16, SubgroupSize: 32, GroupSizeLog2: 8},
		"threads over group":    {MaxThreadsPerRow: 64, SubgroupSize: 32, GroupSizeLog2: 5},
		"negative log2":         {MaxThreadsPerRow: 1, SubgroupSize: 1, GroupSizeLog2: -1},
		"zero threads":          {MaxThreadsPerRow: 0, SubgroupSize: 1, GroupSizeLog2: 0},
	}
	for name, tun := range cases {
		require.Error(t, tun.Validate(), name)
	}
}

func TestLoadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_threads_per_row: 32\nsubgroup_size: 16\ngroup_size_log2: 7\n"), 0o644))

	tun, err := LoadTuning(path)
	require.NoError(t, err)
	require.Equal(t, Tuning{MaxThreadsPerRow: 32, SubgroupSize: 16, GroupSizeLog2: 7}, tun)
	require.Equal(t, 128, tun.GroupSize())
}

func TestLoadTuningPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subgroup_size: 16\n"), 0o644))

	tun, err := LoadTuning(path)
	require.NoError(t, err)
	want := DefaultTuning()
	want.SubgroupSize = 16
	require.Equal(t, want, tun)
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_threads_per_row: 48\n"), 0o644))

	_, err := LoadTuning(path)
	require.Error(t, err)
}

func TestTuningFromEnv(t *testing.T) {
	t.Setenv("RILL_TUNING", "")
	require.Equal(t, DefaultTuning(), TuningFromEnv())

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("group_size_log2: 9\n"), 0o644))
	t.Setenv("RILL_TUNING", path)
	require.Equal(t, 512, TuningFromEnv().GroupSize())
}
