// Package experiment wires a full run together from a YAML configuration:
// dataset location and dimensions, encoder selection, partition strategy,
// and loader behavior.
package experiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wfpipe/wfpipe/encode"
	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/split"
)

// EncoderConfig selects and parameterizes the feature encoder. Kind is one
// of packet-sizes, tiktok, directions, tam, volume. Unused fields for the
// chosen kind are ignored.
type EncoderConfig struct {
	Kind string `yaml:"kind"`
	// Length is the slot count for the series encoders and the volume
	// series. Defaults to encode.DefaultInputLength.
	Length int `yaml:"length"`
	// Width is the bin count per direction row of the tam encoder.
	Width int `yaml:"width"`
	// Bins is the bin count of the volume encoder.
	Bins int `yaml:"bins"`
	// Lookback is the time window in seconds. Required for tam and volume,
	// optional (windowed mode) for the series encoders.
	Lookback float64 `yaml:"lookback"`
	// MinPacketSize drops packets strictly smaller than this many bytes.
	MinPacketSize int `yaml:"min_packet_size"`
	// PacketCounts switches the tam encoder from byte volume to packet
	// counts per bin.
	PacketCounts bool `yaml:"packet_counts"`
	// ZeroAnchor anchors the tam window at the first timestamp instead of
	// looking back from the last.
	ZeroAnchor bool `yaml:"zero_anchor"`
}

// Config describes one experiment run.
type Config struct {
	// Dataset is the trace dataset root directory.
	Dataset string `yaml:"dataset"`
	// Classes, Subpages, Samples are the enumeration dimensions. Subpages
	// is only used with the subpages layout.
	Classes  int `yaml:"classes"`
	Subpages int `yaml:"subpages"`
	Samples  int `yaml:"samples"`
	// Fold rotates the partition for cross-validation.
	Fold int `yaml:"fold"`
	// Workers bounds the load worker pool. Zero means the loader default.
	Workers int `yaml:"workers"`
	// CrossValidation is an optional per-class offsets table path; when set,
	// the subpages layout partitions 8:1:1 via split.ByTable.
	CrossValidation string `yaml:"cross_validation"`
	// ErrorPolicy is abort (default) or collect.
	ErrorPolicy string        `yaml:"error_policy"`
	Encoder     EncoderConfig `yaml:"encoder"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses YAML configuration bytes, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}

	if cfg.Encoder.Length == 0 {
		cfg.Encoder.Length = encode.DefaultInputLength
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields every run needs. Encoder parameters are
// validated by the encoder constructors in BuildEncoder.
func (c *Config) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("%w: dataset must be set", errs.ErrInvalidConfig)
	}
	if c.Classes <= 0 {
		return fmt.Errorf("%w: classes must be positive, got %d", errs.ErrInvalidConfig, c.Classes)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", errs.ErrInvalidConfig, c.Samples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", errs.ErrInvalidConfig, c.Workers)
	}
	if _, err := format.ParseEncoderKind(c.Encoder.Kind); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUnknownEncoder, err)
	}
	if _, err := format.ParseErrorPolicy(c.ErrorPolicy); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}

	return nil
}

// Policy returns the parsed load error policy.
func (c *Config) Policy() format.ErrorPolicy {
	policy, err := format.ParseErrorPolicy(c.ErrorPolicy)
	if err != nil {
		return format.AbortOnError
	}

	return policy
}

// BuildEncoder constructs the configured encoder. Selection happens once
// here; the per-trace encode path never re-dispatches on the kind.
func (c *Config) BuildEncoder() (encode.Encoder, error) {
	kind, err := format.ParseEncoderKind(c.Encoder.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnknownEncoder, err)
	}

	switch kind {
	case format.EncoderPacketSize:
		return encode.NewPacketSizeEncoder(c.Encoder.Length, c.seriesOptions()...)
	case format.EncoderDirectionalTime:
		return encode.NewDirectionalTimeEncoder(c.Encoder.Length, c.seriesOptions()...)
	case format.EncoderConstantDirection:
		return encode.NewConstantDirectionEncoder(c.Encoder.Length, c.seriesOptions()...)
	case format.EncoderAggregateMatrix:
		return encode.NewAggregateMatrixEncoder(c.Encoder.Width, c.Encoder.Lookback, c.matrixOptions()...)
	case format.EncoderVolumeSeries:
		return encode.NewVolumeSeriesEncoder(c.Encoder.Length, c.Encoder.Bins, c.Encoder.Lookback, c.seriesOptions()...)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownEncoder, c.Encoder.Kind)
	}
}

func (c *Config) seriesOptions() []encode.SeriesOption {
	var opts []encode.SeriesOption
	if c.Encoder.MinPacketSize > 0 {
		opts = append(opts, encode.WithMinPacketSize(c.Encoder.MinPacketSize))
	}
	if kind, _ := format.ParseEncoderKind(c.Encoder.Kind); kind != format.EncoderVolumeSeries && c.Encoder.Lookback > 0 {
		opts = append(opts, encode.WithLookback(c.Encoder.Lookback))
	}

	return opts
}

func (c *Config) matrixOptions() []encode.MatrixOption {
	var opts []encode.MatrixOption
	if c.Encoder.PacketCounts {
		opts = append(opts, encode.WithMatrixPacketCounts())
	}
	if c.Encoder.ZeroAnchor {
		opts = append(opts, encode.WithMatrixZeroAnchor())
	}
	if c.Encoder.MinPacketSize > 0 {
		opts = append(opts, encode.WithMatrixMinPacketSize(c.Encoder.MinPacketSize))
	}

	return opts
}

// Partition builds the train/validation/test split for the detected layout:
// BySample for the samples layout, and for the subpages layout ByTable when
// a cross-validation table is configured, BySubpage otherwise.
func (c *Config) Partition(layout format.Layout) (split.Split, error) {
	switch layout {
	case format.LayoutSamples:
		return split.BySample(c.Classes, c.Samples, c.Fold), nil
	case format.LayoutSubpages:
		if c.Subpages <= 0 {
			return split.Split{}, fmt.Errorf("%w: subpages must be positive, got %d", errs.ErrInvalidConfig, c.Subpages)
		}
		if c.CrossValidation != "" {
			table, err := split.LoadTable(c.CrossValidation)
			if err != nil {
				return split.Split{}, err
			}

			return split.ByTable(c.Classes, c.Subpages, c.Samples, c.Fold, table)
		}

		return split.BySubpage(c.Classes, c.Subpages, c.Samples, c.Fold), nil
	default:
		return split.Split{}, fmt.Errorf("%w: unknown layout %d", errs.ErrInvalidConfig, layout)
	}
}
