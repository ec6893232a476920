package tensor

// RemapFormat selects the memory layout of remap images.
type RemapFormat int

// Supported remap layouts.
const (
	NCHW RemapFormat = iota
	NHWC
)

// String returns a human-readable format name.
func (f RemapFormat) String() string {
	switch f {
	case NCHW:
		return "NCHW"
	case NHWC:
		return "NHWC"
	default:
		return "unknown"
	}
}

// BorderMode selects how remap sample coordinates outside the source image
// are resolved.
type BorderMode int

// Supported border modes.
const (
	BorderConstant  BorderMode = iota // out-of-range samples read a constant scalar
	BorderReplicate                   // coordinates clamp to the nearest edge
	BorderReflect                     // coordinates reflect off the edges
	BorderWrap                        // coordinates wrap around
)

// String returns a human-readable border mode name.
func (b BorderMode) String() string {
	switch b {
	case BorderConstant:
		return "constant"
	case BorderReplicate:
		return "replicate"
	case BorderReflect:
		return "reflect"
	case BorderWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// InterpMode selects the remap sampling filter.
type InterpMode int

// Supported interpolation modes.
const (
	InterpNearest InterpMode = iota
	InterpLinear
)

// String returns a human-readable interpolation mode name.
func (m InterpMode) String() string {
	switch m {
	case InterpNearest:
		return "nearest"
	case InterpLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// RemapParams bundles the remap operator configuration.
type RemapParams struct {
	Format RemapFormat
	Border BorderMode
	Interp InterpMode
	Scalar float32 // fill value for BorderConstant
}
