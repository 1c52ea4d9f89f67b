package encode

import (
	"strconv"
	"strings"

	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/trace"
)

// ConstantDirectionEncoder produces a 1xL feature of +1/-1 per packet,
// direction only, ignoring sizes and times. This is the representation a
// constant-size padding defense would leave an observer.
//
// Malformed-line policy matches DirectionalTimeEncoder: terminate on a short
// line (2 required fields, 3 with a video-variant filter), skip lines
// matching neither direction marker.
type ConstantDirectionEncoder struct {
	cfg *seriesConfig
}

var _ Encoder = (*ConstantDirectionEncoder)(nil)

// NewConstantDirectionEncoder creates a direction-only encoder with the
// given feature length.
func NewConstantDirectionEncoder(length int, opts ...SeriesOption) (*ConstantDirectionEncoder, error) {
	cfg, err := newSeriesConfig(length, opts...)
	if err != nil {
		return nil, err
	}

	return &ConstantDirectionEncoder{cfg: cfg}, nil
}

// Encode transforms one raw trace into a 1xL feature of direction signs.
func (e *ConstantDirectionEncoder) Encode(raw []byte) (*Feature, error) {
	lines := strings.Split(string(raw), "\n")
	feature := NewFeature(1, e.cfg.length)

	cutoff, err := e.cfg.windowCutoff(lines)
	if err != nil {
		return nil, err
	}

	required := 2
	if e.cfg.requiresSize() {
		required = 3
	}

	n := 0
	for _, line := range lines {
		parts := trace.Fields(line)
		if len(parts) < required {
			break
		}

		if e.cfg.requiresSize() {
			size, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				break
			}
			if skip, stop := e.cfg.filterPacket(parts[0], size, cutoff); stop {
				break
			} else if skip {
				continue
			}
		}

		switch trace.ParseDirection(parts[1]) {
		case trace.DirSent:
			feature.Set(0, n, 1)
			n++
		case trace.DirReceived:
			feature.Set(0, n, -1)
			n++
		case trace.DirUnknown:
		}

		if n == e.cfg.length {
			break
		}
	}

	return feature, nil
}

// Shape returns (1, length).
func (e *ConstantDirectionEncoder) Shape() (rows, cols int) {
	return 1, e.cfg.length
}

// Kind returns format.EncoderConstantDirection.
func (e *ConstantDirectionEncoder) Kind() format.EncoderKind {
	return format.EncoderConstantDirection
}
