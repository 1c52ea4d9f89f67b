package compress

// ZstdCodec provides Zstandard compression for trace logs, the default
// archive format of the capture tooling. Two implementations exist behind a
// build tag: a pure-Go one and a cgo one binding libzstd, which is faster
// when cgo is available.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
