// Package encode turns one raw trace into a fixed-shape numeric feature.
//
// Five encodings are implemented, each a pure function of the raw bytes and
// its construction-time configuration:
//
//   - PacketSizeEncoder: signed tunnel-padded packet sizes, one slot per packet
//   - DirectionalTimeEncoder: signed timestamps ("tiktok"), one slot per packet
//   - ConstantDirectionEncoder: +1/-1 per packet, direction only
//   - AggregateMatrixEncoder: 2xW time-binned sent/received volume (TAM)
//   - VolumeSeriesEncoder: 1xL time-binned directional byte volume
//
// The malformed-line policy is deliberately encoder-specific. The per-packet
// family terminates parsing at the first short or unparseable line; the
// aggregate-bin family skips such lines and keeps going. The asymmetry
// reproduces the behavior of the four experiment drivers this pipeline
// serves and must not be unified.
//
// Encoder selection happens once, at configuration time, by constructing the
// concrete encoder; nothing dispatches on encoding flags per trace.
package encode

import (
	"github.com/wfpipe/wfpipe/format"
)

// Encoder is the strategy interface all encodings implement.
//
// Encode must be deterministic: identical raw bytes yield identical
// features. Implementations return features of exactly Shape() regardless of
// trace length.
type Encoder interface {
	// Encode transforms one raw trace into a feature.
	Encode(raw []byte) (*Feature, error)

	// Shape returns the fixed (rows, cols) of every produced feature.
	Shape() (rows, cols int)

	// Kind identifies the encoding.
	Kind() format.EncoderKind
}
