package encode

import (
	"fmt"
	"strings"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/internal/options"
	"github.com/wfpipe/wfpipe/trace"
)

const (
	// WebsiteMatrixWidth and WebsiteMatrixWindow are the aggregation
	// parameters of the website fingerprinting experiments.
	WebsiteMatrixWidth  = 1800
	WebsiteMatrixWindow = 80.0

	// VideoMatrixWidth and VideoMatrixWindow are the aggregation parameters
	// of the video fingerprinting experiments.
	VideoMatrixWidth  = 400
	VideoMatrixWindow = 60.0
)

// matrixConfig holds the AggregateMatrixEncoder configuration.
type matrixConfig struct {
	width        int
	lookback     float64
	minSize      int
	countPackets bool
	zeroAnchor   bool
}

// MatrixOption configures an AggregateMatrixEncoder.
type MatrixOption = options.Option[*matrixConfig]

// WithMatrixPacketCounts accumulates packet counts into the bins instead of
// byte volume.
func WithMatrixPacketCounts() MatrixOption {
	return options.NoError(func(c *matrixConfig) {
		c.countPackets = true
	})
}

// WithMatrixZeroAnchor anchors the bins at absolute time zero instead of a
// look-back window ending at the last parseable timestamp. The website
// experiments bin whole traces from the start; the video experiments keep
// only the final window of a much longer session.
func WithMatrixZeroAnchor() MatrixOption {
	return options.NoError(func(c *matrixConfig) {
		c.zeroAnchor = true
	})
}

// WithMatrixMinPacketSize excludes packets smaller than size bytes.
func WithMatrixMinPacketSize(size int) MatrixOption {
	return options.New(func(c *matrixConfig) error {
		if size < 0 {
			return fmt.Errorf("%w: minimum packet size must not be negative, got %d", errs.ErrInvalidConfig, size)
		}
		c.minSize = size

		return nil
	})
}

// AggregateMatrixEncoder produces a traffic aggregation matrix (TAM): a 2xW
// feature where row 0 aggregates sent packets and row 1 received packets
// into fixed time bins of width lookback/W seconds. The final bin absorbs
// any overflow at the window boundary rather than dropping it.
//
// By default the window ends at the trace's last parseable timestamp,
// recovered by scanning backward past malformed trailing lines; packets
// older than the window are excluded. WithMatrixZeroAnchor switches to
// binning from absolute time zero with no window filter.
//
// Malformed-line policy: unlike the per-packet family, short and unparseable
// lines are skipped, not fatal. Captures in the aggregate experiments are
// taken while the session is still in flight, so a torn line mid-trace is
// expected rather than exceptional.
type AggregateMatrixEncoder struct {
	cfg *matrixConfig
}

var _ Encoder = (*AggregateMatrixEncoder)(nil)

// NewAggregateMatrixEncoder creates an aggregate-matrix encoder with the
// given bin count and window length in seconds.
//
// Options:
//   - WithMatrixPacketCounts: bin packet counts instead of bytes
//   - WithMatrixZeroAnchor: bin from absolute time zero
//   - WithMatrixMinPacketSize: exclude small packets
//
// Returns an error wrapping errs.ErrInvalidConfig for a non-positive width
// or window.
func NewAggregateMatrixEncoder(width int, lookbackSeconds float64, opts ...MatrixOption) (*AggregateMatrixEncoder, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: matrix width must be positive, got %d", errs.ErrInvalidConfig, width)
	}
	if lookbackSeconds <= 0 {
		return nil, fmt.Errorf("%w: look-back window must be positive, got %v", errs.ErrInvalidConfig, lookbackSeconds)
	}

	cfg := &matrixConfig{width: width, lookback: lookbackSeconds}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &AggregateMatrixEncoder{cfg: cfg}, nil
}

// NewWebsiteMatrixEncoder creates the website-experiment TAM encoder:
// 1800 bins over 80 seconds, packet counts, zero-anchored.
func NewWebsiteMatrixEncoder() (*AggregateMatrixEncoder, error) {
	return NewAggregateMatrixEncoder(WebsiteMatrixWidth, WebsiteMatrixWindow,
		WithMatrixPacketCounts(), WithMatrixZeroAnchor())
}

// NewVideoMatrixEncoder creates the video-experiment TAM encoder: 400 bins
// over the final 60 seconds, byte volume.
func NewVideoMatrixEncoder(opts ...MatrixOption) (*AggregateMatrixEncoder, error) {
	return NewAggregateMatrixEncoder(VideoMatrixWidth, VideoMatrixWindow, opts...)
}

// Encode transforms one raw trace into a 2xW aggregation matrix.
//
// In look-back mode it returns an error wrapping errs.ErrNoTimestamp when no
// line in the trace yields a parseable timestamp, since no window can be
// anchored.
func (e *AggregateMatrixEncoder) Encode(raw []byte) (*Feature, error) {
	lines := strings.Split(string(raw), "\n")
	feature := NewFeature(2, e.cfg.width)

	var start float64
	if !e.cfg.zeroAnchor {
		last, ok := trace.LastTimestamp(lines)
		if !ok {
			return nil, fmt.Errorf("%w: cannot anchor %v second look-back window", errs.ErrNoTimestamp, e.cfg.lookback)
		}
		start = last/1e9 - e.cfg.lookback
	}

	for _, line := range lines {
		parts := trace.Fields(line)
		if len(parts) < 3 {
			continue
		}

		value := 1.0
		if !e.cfg.countPackets || e.cfg.minSize > 0 {
			size, ok := trace.ParseSize(parts[2])
			if !ok {
				continue
			}
			if size < e.cfg.minSize {
				continue
			}
			if !e.cfg.countPackets {
				value = float64(size)
			}
		}

		ts, ok := trace.ParseTimestamp(parts[0])
		if !ok {
			continue
		}

		var row int
		switch trace.ParseDirection(parts[1]) {
		case trace.DirSent:
			row = 0
		case trace.DirReceived:
			row = 1
		case trace.DirUnknown:
			continue
		}

		t := ts / 1e9
		if !e.cfg.zeroAnchor {
			if t < start {
				continue
			}
			t -= start
		}

		if t >= e.cfg.lookback {
			feature.Add(row, e.cfg.width-1, value)
		} else {
			feature.Add(row, int(t*float64(e.cfg.width-1)/e.cfg.lookback), value)
		}
	}

	return feature, nil
}

// Shape returns (2, width).
func (e *AggregateMatrixEncoder) Shape() (rows, cols int) {
	return 2, e.cfg.width
}

// Kind returns format.EncoderAggregateMatrix.
func (e *AggregateMatrixEncoder) Kind() format.EncoderKind {
	return format.EncoderAggregateMatrix
}
