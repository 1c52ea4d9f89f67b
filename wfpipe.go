// Package wfpipe turns directories of raw network trace logs into
// machine-learning-ready datasets for traffic-analysis experiments.
//
// A trace is a text file of one event per line ("timestamp,direction,size"
// in nanoseconds, sn/rn markers, bytes). The pipeline discovers traces under
// a dataset root, encodes each into a fixed-shape numeric feature, and
// partitions the identifiers into deterministic train/validation/test sets.
//
// # Core Features
//
//   - Auto-detected dataset layouts (flat samples or class/subpage/sample)
//   - Transparent decompression of stored traces (zstd, gzip, lz4, s2)
//   - Five feature encodings: padded packet sizes, directional timestamps,
//     direction-only series, 2xW aggregate matrices (TAM), and binned
//     volume series
//   - Bounded-concurrency loading with abort-or-collect error policies
//   - Deterministic fold-rotated partitioning, optionally table-driven 8:1:1
//   - Confidence threshold sweep scoring with CSV output
//
// # Basic Usage
//
// Loading a dataset from a YAML experiment configuration:
//
//	import "github.com/wfpipe/wfpipe"
//
//	cfg, _ := experiment.Load("run.yaml")
//	ds, _ := wfpipe.Load(context.Background(), cfg)
//
//	for _, id := range ds.Split.Train {
//	    feature := ds.Features[id]
//	    label := ds.Labels[id]
//	    _ = feature
//	    _ = label
//	}
//
// Scoring classifier predictions across the threshold sweep:
//
//	rows, _ := eval.Sweep(predictions)
//	_ = eval.WriteCSV(os.Stdout, rows, "fold-0")
//
// # Package Structure
//
// This package provides a convenient top-level wrapper around the store,
// encode, dataset, and split packages. For fine-grained control, wire those
// packages directly.
package wfpipe

import (
	"context"

	"github.com/wfpipe/wfpipe/dataset"
	"github.com/wfpipe/wfpipe/experiment"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/split"
	"github.com/wfpipe/wfpipe/store"
)

// Dataset bundles everything one experiment run consumes: the encoded
// feature and label tables and the identifier partition.
type Dataset struct {
	Features dataset.FeatureTable
	Labels   dataset.LabelTable
	Split    split.Split
	Layout   format.Layout
}

// Load runs the full pipeline described by the configuration: open the
// dataset root, detect its layout, enumerate and encode every trace across
// the worker pool, and partition the identifiers.
//
// Under the collect error policy a partially loaded Dataset is returned
// together with the joined load error; the caller decides whether gaps are
// acceptable.
func Load(ctx context.Context, cfg *experiment.Config, opts ...dataset.LoaderOption) (*Dataset, error) {
	st, err := store.Open(cfg.Dataset)
	if err != nil {
		return nil, err
	}

	encoder, err := cfg.BuildEncoder()
	if err != nil {
		return nil, err
	}

	part, err := cfg.Partition(st.Layout())
	if err != nil {
		return nil, err
	}

	loaderOpts := []dataset.LoaderOption{dataset.WithErrorPolicy(cfg.Policy())}
	if cfg.Workers > 0 {
		loaderOpts = append(loaderOpts, dataset.WithWorkers(cfg.Workers))
	}
	loaderOpts = append(loaderOpts, opts...)

	loader, err := dataset.NewLoader(st, encoder, loaderOpts...)
	if err != nil {
		return nil, err
	}

	entries := st.Enumerate(cfg.Classes, cfg.Subpages, cfg.Samples)
	features, labels, err := loader.Load(ctx, entries)
	if features == nil {
		return nil, err
	}

	return &Dataset{
		Features: features,
		Labels:   labels,
		Split:    part,
		Layout:   st.Layout(),
	}, err
}
