// Package dataset builds the in-memory feature and label tables by applying
// one encoder across every enumerated trace in parallel.
package dataset

import (
	"encoding/binary"
	"math"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/wfpipe/wfpipe/encode"
	"github.com/wfpipe/wfpipe/trace"
)

// FeatureTable maps trace identifiers to their encoded features. Built once
// per run by a Loader and read-only thereafter.
type FeatureTable map[trace.ID]*encode.Feature

// LabelTable maps trace identifiers to their class index. It always shares
// its key set with the FeatureTable built alongside it.
type LabelTable map[trace.ID]int

// Fingerprint returns a stable xxHash64 digest of the table: identifiers in
// canonical order, each followed by its feature values. Two runs over the
// same dataset with the same encoder produce the same fingerprint, which is
// the cheap way to assert reproducibility across machines.
func (t FeatureTable) Fingerprint() uint64 {
	ids := make([]trace.ID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b trace.ID) int {
		return strings.Compare(a.String(), b.String())
	})

	digest := xxhash.New()
	var buf [8]byte
	for _, id := range ids {
		_, _ = digest.WriteString(id.String())
		for _, v := range t[id].Data() {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = digest.Write(buf[:])
		}
	}

	return digest.Sum64()
}
