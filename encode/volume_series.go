package encode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/trace"
)

// DefaultVolumeBins is the standard bin count of the volume-series encoding.
const DefaultVolumeBins = 4000

// VolumeSeriesEncoder produces a 1xL feature of directional byte volume
// accumulated into fixed time bins spanning a look-back window that ends at
// the trace's last parseable timestamp: sent bytes add, received bytes
// subtract, and bins past the configured count are dropped. The feature
// length may exceed the bin count, leaving trailing zeros, so the shape
// stays interchangeable with the per-packet series encodings.
//
// Malformed-line policy follows the per-packet family: a short line or an
// unparseable size or timestamp terminates parsing entirely.
type VolumeSeriesEncoder struct {
	cfg *seriesConfig
}

var _ Encoder = (*VolumeSeriesEncoder)(nil)

// NewVolumeSeriesEncoder creates a volume-series encoder with the given
// feature length, bin count, and window length in seconds. WithMinPacketSize
// applies the video-variant small-packet filter.
//
// Returns an error wrapping errs.ErrInvalidConfig when bins is not in
// (0, length] or the window is not positive.
func NewVolumeSeriesEncoder(length, bins int, lookbackSeconds float64, opts ...SeriesOption) (*VolumeSeriesEncoder, error) {
	cfg, err := newSeriesConfig(length, opts...)
	if err != nil {
		return nil, err
	}
	if bins <= 0 || bins > length {
		return nil, fmt.Errorf("%w: bin count must be in (0, %d], got %d", errs.ErrInvalidConfig, length, bins)
	}
	if lookbackSeconds <= 0 {
		return nil, fmt.Errorf("%w: look-back window must be positive, got %v", errs.ErrInvalidConfig, lookbackSeconds)
	}
	cfg.bins = bins
	cfg.lookback = lookbackSeconds

	return &VolumeSeriesEncoder{cfg: cfg}, nil
}

// Encode transforms one raw trace into a 1xL binned volume series. It
// returns an error wrapping errs.ErrNoTimestamp when no line in the trace
// yields a parseable timestamp.
func (e *VolumeSeriesEncoder) Encode(raw []byte) (*Feature, error) {
	lines := strings.Split(string(raw), "\n")
	feature := NewFeature(1, e.cfg.length)

	last, ok := trace.LastTimestamp(lines)
	if !ok {
		return nil, fmt.Errorf("%w: cannot anchor %v second look-back window", errs.ErrNoTimestamp, e.cfg.lookback)
	}

	start := last - e.cfg.lookback*1e9
	interval := e.cfg.lookback * 1e9 / float64(e.cfg.bins)
	intervalMax := interval

	n := 0
	for _, line := range lines {
		parts := trace.Fields(line)
		if len(parts) < 3 {
			break
		}

		size, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			break
		}
		ts, ok := trace.ParseTimestamp(parts[0])
		if !ok {
			break
		}
		if size < e.cfg.minSize || ts < start {
			continue
		}

		for ts-start > intervalMax {
			intervalMax += interval
			n++
		}
		if n >= e.cfg.bins {
			break
		}

		switch trace.ParseDirection(parts[1]) {
		case trace.DirSent:
			feature.Add(0, n, size)
		case trace.DirReceived:
			feature.Add(0, n, -size)
		case trace.DirUnknown:
		}
	}

	return feature, nil
}

// Shape returns (1, length).
func (e *VolumeSeriesEncoder) Shape() (rows, cols int) {
	return 1, e.cfg.length
}

// Kind returns format.EncoderVolumeSeries.
func (e *VolumeSeriesEncoder) Kind() format.EncoderKind {
	return format.EncoderVolumeSeries
}
