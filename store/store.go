// Package store resolves the on-disk layout of a trace dataset and
// enumerates trace identifiers to file paths.
//
// Two layouts exist and are never mixed:
//
//	root/<class>/<sample>.log                      (samples)
//	root/<class>/<class>-<subpage>-<sample>.log    (subpages, 4-digit padded)
//
// The layout is auto-detected from two sentinel filenames under class 0.
// Trace files may be stored compressed (.zst, .gz, .lz4, .s2 suffix on the
// .log name); reads decompress transparently.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wfpipe/wfpipe/compress"
	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/trace"
)

// Entry pairs a trace identifier with the path it loads from.
type Entry struct {
	ID   trace.ID
	Path string
}

// Store provides access to one dataset root with a detected layout.
type Store struct {
	root   string
	layout format.Layout
}

// Open validates the dataset root and detects its layout.
func Open(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dataset root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", errs.ErrInvalidConfig, root)
	}

	layout, err := DetectLayout(root)
	if err != nil {
		return nil, err
	}

	return &Store{root: root, layout: layout}, nil
}

// Root returns the dataset root directory.
func (s *Store) Root() string { return s.root }

// Layout returns the detected directory layout.
func (s *Store) Layout() format.Layout { return s.layout }

// DetectLayout inspects the two sentinel filenames under class 0 and decides
// between the samples and subpages layouts. Exactly one sentinel must exist:
// both is errs.ErrAmbiguousLayout, neither is errs.ErrNoLayout, and either
// error names the offending root.
func DetectLayout(root string) (format.Layout, error) {
	subpages := traceExists(filepath.Join(root, "0", "0000-0000-0000.log"))
	samples := traceExists(filepath.Join(root, "0", "0.log"))

	switch {
	case subpages && samples:
		return 0, fmt.Errorf("%w: %s", errs.ErrAmbiguousLayout, root)
	case subpages:
		return format.LayoutSubpages, nil
	case samples:
		return format.LayoutSamples, nil
	default:
		return 0, fmt.Errorf("%w: %s", errs.ErrNoLayout, root)
	}
}

// Enumerate produces the ordered (identifier, path) list by nested iteration
// over class, (subpage,) sample. In the samples layout the subpages argument
// is ignored.
func (s *Store) Enumerate(classes, subpages, samples int) []Entry {
	if s.layout == format.LayoutSamples {
		entries := make([]Entry, 0, classes*samples)
		for c := 0; c < classes; c++ {
			dir := filepath.Join(s.root, strconv.Itoa(c))
			for n := 0; n < samples; n++ {
				entries = append(entries, Entry{
					ID:   trace.NewSampleID(c, n),
					Path: filepath.Join(dir, strconv.Itoa(n)+".log"),
				})
			}
		}

		return entries
	}

	entries := make([]Entry, 0, classes*subpages*samples)
	for c := 0; c < classes; c++ {
		dir := filepath.Join(s.root, strconv.Itoa(c))
		for p := 0; p < subpages; p++ {
			for n := 0; n < samples; n++ {
				id := trace.NewSubpageID(c, p, n)
				entries = append(entries, Entry{
					ID:   id,
					Path: filepath.Join(dir, id.String()+".log"),
				})
			}
		}
	}

	return entries
}

// ReadTrace reads one trace file. When the plain path does not exist, the
// registered compressed variants are probed in order and decompressed. A
// missing or unreadable trace is an error naming the path; the caller
// decides whether it aborts the batch.
func (s *Store) ReadTrace(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		return raw, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read trace %s: %w", path, err)
	}

	for _, ext := range compress.Extensions() {
		data, cerr := os.ReadFile(path + ext)
		if cerr != nil {
			continue
		}

		codec, _ := compress.ForExtension(ext)
		decompressed, derr := codec.Decompress(data)
		if derr != nil {
			return nil, fmt.Errorf("read trace %s: %w", path+ext, derr)
		}

		return decompressed, nil
	}

	return nil, fmt.Errorf("read trace %s: %w", path, err)
}

// traceExists reports whether the trace file exists in plain or compressed
// form.
func traceExists(path string) bool {
	if fileExists(path) {
		return true
	}
	for _, ext := range compress.Extensions() {
		if fileExists(path + ext) {
			return true
		}
	}

	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
