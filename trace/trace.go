// Package trace provides the low-level primitives for working with raw
// packet traces and their identifiers.
//
// A raw trace is a line-oriented text file. Each line is a comma-separated
// record:
//
//	timestamp_ns,direction[,size,...]
//
// The direction field is matched by substring containment of 's' (sent) or
// 'r' (received), not by exact comparison; "sn" and "recv" both classify.
// This mirrors how the capture tooling labels events and is deliberately
// preserved. How many fields a line must carry, and what happens when it
// carries fewer, is an encoder-level policy (see package encode).
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction classifies a packet relative to the client.
type Direction int8

const (
	DirUnknown  Direction = 0
	DirSent     Direction = 1
	DirReceived Direction = -1
)

// Sign returns +1 for sent, -1 for received and 0 for unknown, the sign
// convention every feature encoding uses.
func (d Direction) Sign() float64 {
	return float64(d)
}

func (d Direction) String() string {
	switch d {
	case DirSent:
		return "sent"
	case DirReceived:
		return "received"
	default:
		return "unknown"
	}
}

// Fields splits a raw trace line into its comma-separated fields. No
// trimming is performed; parse helpers below tolerate surrounding space.
func Fields(line string) []string {
	return strings.Split(line, ",")
}

// ParseDirection classifies a direction field. The substring checks run in
// order, so sent wins when a field contains both markers.
func ParseDirection(field string) Direction {
	if strings.Contains(field, "s") {
		return DirSent
	}
	if strings.Contains(field, "r") {
		return DirReceived
	}

	return DirUnknown
}

// ParseTimestamp parses a nanosecond timestamp field. The value is kept as
// float64 because all window arithmetic downstream is performed in floating
// point.
func ParseTimestamp(field string) (float64, bool) {
	ts, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, false
	}

	return ts, true
}

// ParseSize parses an integral packet size field.
func ParseSize(field string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, false
	}

	return n, true
}

// LastTimestamp scans lines backward and returns the last parseable
// nanosecond timestamp. Malformed trailing lines (truncated writes are
// common at the tail of a capture) are skipped until one parses; ok is
// false when no line in the trace parses.
//
// This is explicit reverse iteration with a parse-attempt result, not
// error-driven control flow.
func LastTimestamp(lines []string) (ts float64, ok bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if ts, ok = ParseTimestamp(Fields(lines[i])[0]); ok {
			return ts, true
		}
	}

	return 0, false
}

// ID is the compound key identifying one trace: class, optional subpage,
// and sample. Its canonical string form matches the on-disk file naming:
// "{class}-{sample}" for the samples layout, and each component zero-padded
// to 4 digits for the subpages layout.
//
// ID is comparable and used directly as the map key of the feature and
// label tables.
type ID struct {
	Class    int
	Subpage  int
	Sample   int
	subpaged bool
}

// NewSampleID creates an identifier for the samples layout.
func NewSampleID(class, sample int) ID {
	return ID{Class: class, Sample: sample}
}

// NewSubpageID creates an identifier for the subpages layout.
func NewSubpageID(class, subpage, sample int) ID {
	return ID{Class: class, Subpage: subpage, Sample: sample, subpaged: true}
}

// Subpaged reports whether the identifier carries a subpage component.
func (id ID) Subpaged() bool {
	return id.subpaged
}

func (id ID) String() string {
	if id.subpaged {
		return fmt.Sprintf("%04d-%04d-%04d", id.Class, id.Subpage, id.Sample)
	}

	return fmt.Sprintf("%d-%d", id.Class, id.Sample)
}
