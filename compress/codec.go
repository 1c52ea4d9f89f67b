// Package compress provides the codecs used to read compressed trace logs.
//
// Research captures are large and routinely archived compressed; a store
// resolves a codec from the file extension and decompresses transparently,
// so a dataset of .log.zst files behaves exactly like one of plain .log
// files. Each codec also compresses, which the test fixtures and dataset
// preparation tooling rely on.
package compress

import "fmt"

// Compressor compresses a whole trace payload.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The
	// input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a compressed trace payload.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	// It returns an error when the payload is corrupted or was compressed
	// with a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var codecsByExtension = map[string]Codec{
	".zst": NewZstdCodec(),
	".s2":  NewS2Codec(),
	".lz4": NewLZ4Codec(),
	".gz":  NewGzipCodec(),
}

// extensionProbeOrder is the deterministic order stores use when probing
// for a compressed variant of a trace file.
var extensionProbeOrder = []string{".zst", ".gz", ".lz4", ".s2"}

// ForExtension returns the codec registered for a file extension such as
// ".zst". ok is false for unregistered extensions, including "".
func ForExtension(ext string) (Codec, bool) {
	codec, ok := codecsByExtension[ext]
	return codec, ok
}

// Extensions returns the registered extensions in probe order.
func Extensions() []string {
	out := make([]string, len(extensionProbeOrder))
	copy(out, extensionProbeOrder)

	return out
}

// GetCodec returns the codec for ext, or an error naming the extension.
func GetCodec(ext string) (Codec, error) {
	if codec, ok := ForExtension(ext); ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression extension: %q", ext)
}
