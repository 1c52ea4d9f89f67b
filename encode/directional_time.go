package encode

import (
	"strconv"
	"strings"

	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/internal/round"
	"github.com/wfpipe/wfpipe/trace"
)

// DirectionalTimeEncoder produces the "tiktok" representation: a 1xL feature
// of signed timestamps, +t for sent packets and -t for received, one slot
// per packet. Timestamps are converted to seconds and quantized to 1e-4
// resolution; sub-0.1ms timing carries no fingerprintable signal and would
// only add capture noise.
//
// Malformed-line policy: a line with fewer than the required fields or an
// unparseable timestamp terminates parsing entirely. Lines require 2 fields,
// or 3 when a video-variant filter (WithMinPacketSize, WithLookback) is
// enabled. A line matching neither direction marker is skipped without
// consuming a slot.
type DirectionalTimeEncoder struct {
	cfg *seriesConfig
}

var _ Encoder = (*DirectionalTimeEncoder)(nil)

// NewDirectionalTimeEncoder creates a directional-time encoder with the
// given feature length.
func NewDirectionalTimeEncoder(length int, opts ...SeriesOption) (*DirectionalTimeEncoder, error) {
	cfg, err := newSeriesConfig(length, opts...)
	if err != nil {
		return nil, err
	}

	return &DirectionalTimeEncoder{cfg: cfg}, nil
}

// Encode transforms one raw trace into a 1xL feature of signed timestamps.
func (e *DirectionalTimeEncoder) Encode(raw []byte) (*Feature, error) {
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

		ts, ok := trace.ParseTimestamp(parts[0])
		if !ok {
			break
		}

		switch trace.ParseDirection(parts[1]) {
		case trace.DirSent:
			feature.Set(0, n, quantizeSeconds(ts))
			n++
		case trace.DirReceived:
			feature.Set(0, n, -quantizeSeconds(ts))
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
func (e *DirectionalTimeEncoder) Shape() (rows, cols int) {
	return 1, e.cfg.length
}

// Kind returns format.EncoderDirectionalTime.
func (e *DirectionalTimeEncoder) Kind() format.EncoderKind {
	return format.EncoderDirectionalTime
}

// quantizeSeconds converts a nanosecond timestamp to seconds at 1e-4
// resolution.
func quantizeSeconds(ns float64) float64 {
	return round.To4(ns / 1e9)
}
