package encode

import (
	"fmt"
	"strings"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/trace"
)

// PacketSizeEncoder produces a 1xL feature of signed, tunnel-padded packet
// sizes: +size for sent packets, -size for received, one slot per packet in
// trace order.
//
// Sizes are padded before being written. The capture tooling records events
// inside the tunnel, so raw sizes would leak more than an observer of the
// real protocol can see; padding to the tunnel's 16-byte granularity, capped
// at its MTU, restores the on-the-wire view.
//
// Malformed-line policy: a line with fewer than 3 fields or an unparseable
// size terminates parsing entirely (stop, not skip). A line whose direction
// field matches neither marker is skipped without consuming a slot.
type PacketSizeEncoder struct {
	cfg *seriesConfig
}

var _ Encoder = (*PacketSizeEncoder)(nil)

// NewPacketSizeEncoder creates a packet-size encoder with the given feature
// length.
//
// Options:
//   - WithMTU overrides the 1420-byte padding cap
//   - WithMinPacketSize / WithLookback enable the video-variant filters
//
// Returns an error wrapping errs.ErrInvalidConfig for a non-positive length
// or invalid option value.
func NewPacketSizeEncoder(length int, opts ...SeriesOption) (*PacketSizeEncoder, error) {
	cfg, err := newSeriesConfig(length, opts...)
	if err != nil {
		return nil, err
	}

	return &PacketSizeEncoder{cfg: cfg}, nil
}

// Encode transforms one raw trace into a 1xL feature of signed padded sizes.
func (e *PacketSizeEncoder) Encode(raw []byte) (*Feature, error) {
	lines := strings.Split(string(raw), "\n")
	feature := NewFeature(1, e.cfg.length)

	cutoff, err := e.cfg.windowCutoff(lines)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, line := range lines {
		parts := trace.Fields(line)
		if len(parts) < 3 {
			break
		}

		size, ok := trace.ParseSize(parts[2])
		if !ok {
			break
		}
		if skip, stop := e.cfg.filterPacket(parts[0], float64(size), cutoff); stop {
			break
		} else if skip {
			continue
		}

		switch trace.ParseDirection(parts[1]) {
		case trace.DirSent:
			feature.Set(0, n, float64(pad(size, e.cfg.mtu)))
			n++
		case trace.DirReceived:
			feature.Set(0, n, -float64(pad(size, e.cfg.mtu)))
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
func (e *PacketSizeEncoder) Shape() (rows, cols int) {
	return 1, e.cfg.length
}

// Kind returns format.EncoderPacketSize.
func (e *PacketSizeEncoder) Kind() format.EncoderKind {
	return format.EncoderPacketSize
}

// pad returns min(mtu, n + (16 - n mod 16)): the packet size padded up to
// the next 16-byte boundary, capped at the tunnel MTU. A size already on a
// boundary still gains a full quantum, matching the tunnel's framing.
func pad(n, mtu int) int {
	return min(mtu, n+(padQuantum-n%padQuantum))
}

// windowCutoff resolves the look-back cutoff timestamp in nanoseconds, or
// a negative sentinel when no window is configured.
func (c *seriesConfig) windowCutoff(lines []string) (float64, error) {
	if c.lookback <= 0 {
		return 0, nil
	}

	last, ok := trace.LastTimestamp(lines)
	if !ok {
		return 0, fmt.Errorf("%w: cannot anchor %v second look-back window", errs.ErrNoTimestamp, c.lookback)
	}

	return last - c.lookback*1e9, nil
}

// filterPacket applies the video-variant filters to one parsed line. It
// reports whether to skip the line, or to stop parsing altogether when the
// timestamp needed by the window filter does not parse (the per-packet
// family terminates on malformed fields).
func (c *seriesConfig) filterPacket(tsField string, size, cutoff float64) (skip, stop bool) {
	if size < c.minSize {
		return true, false
	}
	if c.lookback > 0 {
		ts, ok := trace.ParseTimestamp(tsField)
		if !ok {
			return false, true
		}
		if ts < cutoff {
			return true, false
		}
	}

	return false, false
}
