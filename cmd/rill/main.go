// Package main provides the Rill kernel library CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rill-ml/rill/internal/kernel"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Rill kernel library %s\n", version)
			return
		case "plan":
			runPlan(os.Args[2:])
			return
		}
	}

	fmt.Println("Rill - Tensor Operator Kernels for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version      Show version")
	fmt.Println("  plan A B     Show the reduction decomposition for A rows of B columns")
}

// runPlan prints the launch shape the tiling planner chooses for an
// (A x B) float32 reduction under the active tuning.
func runPlan(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rill plan A B")
		os.Exit(2)
	}
	a, errA := strconv.Atoi(args[0])
	b, errB := strconv.Atoi(args[1])
	if errA != nil || errB != nil || a < 1 || b < 1 {
		fmt.Fprintln(os.Stderr, "rill plan: A and B must be positive integers")
		os.Exit(2)
	}

	tun := kernel.TuningFromEnv()
	dec := kernel.Plan(b, 4, tun)

	fmt.Printf("tuning: max_threads_per_row=%d subgroup_size=%d group_size=%d\n",
		tun.MaxThreadsPerRow, tun.SubgroupSize, tun.GroupSize())
	fmt.Printf("threads_per_row:          %d\n", dec.ThreadsPerRow)
	fmt.Printf("rows_per_group:           %d\n", dec.RowsPerGroup)
	fmt.Printf("scratch_row_stride_words: %d\n", dec.ScratchRowStrideWords)
	fmt.Printf("scratch_bytes:            %d\n", dec.ScratchBytes)
	fmt.Printf("groups:                   %d\n", dec.Groups(a))
}
