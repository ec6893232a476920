package cpu

import "golang.org/x/sys/cpu"

// features tracks the instruction set extensions of the host, detected once
// at startup. The pure-Go kernels cannot emit these instructions directly,
// but wide vector units tell us the compiler-vectorized unrolled loops are
// worth their code size.
type featureSet struct {
	HasAVX2    bool
	HasAVX512F bool
	HasFMA     bool
	HasNEON    bool
}

var features featureSet

func init() {
	features = featureSet{
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasFMA:     cpu.X86.HasFMA,
		HasNEON:    cpu.ARM64.HasASIMD,
	}
}

// wideVectors reports whether the host has vector units wide enough for the
// 4-way unrolled elementwise loops to pay off.
func wideVectors() bool {
	return features.HasAVX2 || features.HasAVX512F || features.HasNEON
}
