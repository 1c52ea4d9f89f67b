package encode

import (
	"fmt"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/internal/options"
)

const (
	// DefaultInputLength is the standard per-packet feature length.
	DefaultInputLength = 5000
	// LargeInputLength is the extended per-packet feature length.
	LargeInputLength = 10000

	// defaultMTU caps padded packet sizes at the tunnel MTU.
	defaultMTU = 1420
	// padQuantum is the tunnel padding granularity in bytes.
	padQuantum = 16
)

// seriesConfig holds the shared configuration of the per-packet encoder
// family (packet sizes, directional time, constant direction) and the
// volume-series encoder.
type seriesConfig struct {
	length   int
	bins     int
	mtu      int
	minSize  float64
	lookback float64
}

// SeriesOption configures a per-packet or volume-series encoder.
type SeriesOption = options.Option[*seriesConfig]

func newSeriesConfig(length int, opts ...SeriesOption) (*seriesConfig, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: feature length must be positive, got %d", errs.ErrInvalidConfig, length)
	}

	cfg := &seriesConfig{length: length, mtu: defaultMTU}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// requiresSize reports whether lines must carry a size field even for
// encodings that do not embed it in the feature. Filtering by minimum size
// or by a look-back window needs the size and timestamp fields, so the
// video-variant configurations raise the required field count to 3.
func (c *seriesConfig) requiresSize() bool {
	return c.minSize > 0 || c.lookback > 0
}

// WithMinPacketSize excludes packets smaller than size bytes. Used by the
// video variants to drop control traffic below the media packet size.
func WithMinPacketSize(size int) SeriesOption {
	return options.New(func(c *seriesConfig) error {
		if size < 0 {
			return fmt.Errorf("%w: minimum packet size must not be negative, got %d", errs.ErrInvalidConfig, size)
		}
		c.minSize = float64(size)

		return nil
	})
}

// WithLookback restricts encoding to the final window of the trace: the
// window of the given length ends at the last parseable timestamp, and
// older packets are excluded. Enabling it makes a trace with no parseable
// timestamp an encoding error.
func WithLookback(seconds float64) SeriesOption {
	return options.New(func(c *seriesConfig) error {
		if seconds <= 0 {
			return fmt.Errorf("%w: look-back window must be positive, got %v", errs.ErrInvalidConfig, seconds)
		}
		c.lookback = seconds

		return nil
	})
}

// WithMTU overrides the tunnel MTU that caps padded packet sizes. Only the
// packet-size encoding consults it.
func WithMTU(bytes int) SeriesOption {
	return options.New(func(c *seriesConfig) error {
		if bytes <= 0 {
			return fmt.Errorf("%w: MTU must be positive, got %d", errs.ErrInvalidConfig, bytes)
		}
		c.mtu = bytes

		return nil
	})
}
