// Package format defines the enumerated types shared across wfpipe packages:
// encoder kinds, dataset directory layouts, and load error policies.
package format

import (
	"fmt"
)

type (
	EncoderKind uint8
	Layout      uint8
	ErrorPolicy uint8
)

const (
	// EncoderPacketSize writes one signed, tunnel-padded packet size per slot.
	EncoderPacketSize EncoderKind = 0x1
	// EncoderDirectionalTime writes one signed timestamp (seconds, 1e-4
	// resolution) per slot, the "tiktok" representation.
	EncoderDirectionalTime EncoderKind = 0x2
	// EncoderConstantDirection writes +1/-1 per slot, direction only.
	EncoderConstantDirection EncoderKind = 0x3
	// EncoderAggregateMatrix produces a 2xW time-binned sent/received
	// volume matrix (TAM).
	EncoderAggregateMatrix EncoderKind = 0x4
	// EncoderVolumeSeries produces a 1xL time-binned directional byte
	// volume series.
	EncoderVolumeSeries EncoderKind = 0x5
)

const (
	// LayoutSamples is root/<class>/<sample>.log.
	LayoutSamples Layout = 0x1
	// LayoutSubpages is root/<class>/<class>-<subpage>-<sample>.log with
	// every component zero-padded to 4 digits.
	LayoutSubpages Layout = 0x2
)

const (
	// AbortOnError stops the whole batch load at the first failure.
	AbortOnError ErrorPolicy = 0x1
	// CollectErrors loads everything it can and reports all failures at
	// the end.
	CollectErrors ErrorPolicy = 0x2
)

func (k EncoderKind) String() string {
	switch k {
	case EncoderPacketSize:
		return "packet-sizes"
	case EncoderDirectionalTime:
		return "tiktok"
	case EncoderConstantDirection:
		return "directions"
	case EncoderAggregateMatrix:
		return "tam"
	case EncoderVolumeSeries:
		return "volume"
	default:
		return "unknown"
	}
}

// ParseEncoderKind maps a configuration string to its EncoderKind.
func ParseEncoderKind(s string) (EncoderKind, error) {
	switch s {
	case "packet-sizes":
		return EncoderPacketSize, nil
	case "tiktok":
		return EncoderDirectionalTime, nil
	case "directions":
		return EncoderConstantDirection, nil
	case "tam":
		return EncoderAggregateMatrix, nil
	case "volume":
		return EncoderVolumeSeries, nil
	default:
		return 0, fmt.Errorf("unknown encoder kind: %q", s)
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutSamples:
		return "samples"
	case LayoutSubpages:
		return "subpages"
	default:
		return "unknown"
	}
}

func (p ErrorPolicy) String() string {
	switch p {
	case AbortOnError:
		return "abort"
	case CollectErrors:
		return "collect"
	default:
		return "unknown"
	}
}

// ParseErrorPolicy maps a configuration string to its ErrorPolicy. The empty
// string resolves to AbortOnError, so batch-or-nothing is the default.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "abort", "":
		return AbortOnError, nil
	case "collect":
		return CollectErrors, nil
	default:
		return 0, fmt.Errorf("unknown error policy: %q", s)
	}
}
