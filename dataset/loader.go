package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wfpipe/wfpipe/encode"
	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/internal/options"
	"github.com/wfpipe/wfpipe/store"
)

// DefaultWorkers is the default size of the load worker pool.
const DefaultWorkers = 10

// Loader reads and encodes traces across a bounded worker pool. Tasks are
// independent file reads plus pure encode calls; results are merged by
// identifier, so the tables are independent of completion order.
type Loader struct {
	store   *store.Store
	encoder encode.Encoder
	workers int
	policy  format.ErrorPolicy
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption = options.Option[*Loader]

// WithWorkers sets the worker pool size.
func WithWorkers(n int) LoaderOption {
	return options.New(func(l *Loader) error {
		if n <= 0 {
			return fmt.Errorf("%w: worker count must be positive, got %d", errs.ErrInvalidConfig, n)
		}
		l.workers = n

		return nil
	})
}

// WithErrorPolicy selects how a failed read or encode is handled:
// format.AbortOnError (default) fails the whole load at the first error,
// format.CollectErrors loads everything it can and reports all failures
// joined at the end.
func WithErrorPolicy(policy format.ErrorPolicy) LoaderOption {
	return options.New(func(l *Loader) error {
		switch policy {
		case format.AbortOnError, format.CollectErrors:
			l.policy = policy
			return nil
		default:
			return fmt.Errorf("%w: unknown error policy %d", errs.ErrInvalidConfig, policy)
		}
	})
}

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return options.New(func(l *Loader) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", errs.ErrInvalidConfig)
		}
		l.logger = logger

		return nil
	})
}

// NewLoader creates a loader for the given store and encoder.
func NewLoader(st *store.Store, encoder encode.Encoder, opts ...LoaderOption) (*Loader, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: store must not be nil", errs.ErrInvalidConfig)
	}
	if encoder == nil {
		return nil, fmt.Errorf("%w: encoder must not be nil", errs.ErrInvalidConfig)
	}

	loader := &Loader{
		store:   st,
		encoder: encoder,
		workers: DefaultWorkers,
		policy:  format.AbortOnError,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := options.Apply(loader, opts...); err != nil {
		return nil, err
	}

	return loader, nil
}

// Load encodes every entry and merges the results into a feature table and
// a label table sharing the same key set.
//
// Under AbortOnError the first failure cancels the remaining tasks and no
// tables are returned. Under CollectErrors the tables hold every entry that
// succeeded and the returned error joins every failure, each annotated with
// its identifier and path; callers that can live with gaps inspect the
// tables, callers that cannot treat the error as fatal.
func (l *Loader) Load(ctx context.Context, entries []store.Entry) (FeatureTable, LabelTable, error) {
	begin := time.Now()
	rows, cols := l.encoder.Shape()
	l.logger.Info("loading dataset",
		slog.String("root", l.store.Root()),
		slog.String("encoder", l.encoder.Kind().String()),
		slog.Int("entries", len(entries)),
		slog.Int("workers", l.workers),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
	)

	results := make([]*encode.Feature, len(entries))
	failures := make([]error, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			raw, err := l.store.ReadTrace(entry.Path)
			if err == nil {
				results[i], err = l.encoder.Encode(raw)
			}
			if err != nil {
				err = fmt.Errorf("trace %s: %w", entry.ID, err)
				if l.policy == format.AbortOnError {
					return err
				}
				failures[i] = err
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	features := make(FeatureTable, len(entries))
	labels := make(LabelTable, len(entries))
	for i, entry := range entries {
		if results[i] == nil {
			continue
		}
		features[entry.ID] = results[i]
		labels[entry.ID] = entry.ID.Class
	}

	if err := errors.Join(failures...); err != nil {
		return features, labels, fmt.Errorf("load completed with failures: %w", err)
	}

	l.logger.Info("dataset loaded",
		slog.Int("features", len(features)),
		slog.Duration("elapsed", time.Since(begin)),
	)

	return features, labels, nil
}
