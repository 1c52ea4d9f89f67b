package wfpipe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfpipe/wfpipe/dataset"
	"github.com/wfpipe/wfpipe/experiment"
	"github.com/wfpipe/wfpipe/format"
	"github.com/wfpipe/wfpipe/trace"
)

// writeSamplesDataset builds a samples-layout dataset whose traces encode a
// recognizable direction pattern per class.
func writeSamplesDataset(t *testing.T, classes, samples int) string {
	t.Helper()
	root := t.TempDir()
	for c := 0; c < classes; c++ {
		dir := filepath.Join(root, strconv.Itoa(c))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for n := 0; n < samples; n++ {
			path := filepath.Join(dir, strconv.Itoa(n)+".log")
			require.NoError(t, os.WriteFile(path, []byte("1000,sn,100\n2000,rn,200\n3000,rn,300\n"), 0o644))
		}
	}

	return root
}

func TestLoad(t *testing.T) {
	t.Run("end to end over a samples dataset", func(t *testing.T) {
		root := writeSamplesDataset(t, 2, 10)
		cfg := &experiment.Config{
			Dataset: root,
			Classes: 2,
			Samples: 10,
			Workers: 4,
			Encoder: experiment.EncoderConfig{Kind: "directions", Length: 8},
		}

		ds, err := Load(context.Background(), cfg)
		require.NoError(t, err)
		require.Equal(t, format.LayoutSamples, ds.Layout)
		require.Len(t, ds.Features, 20)
		require.Len(t, ds.Labels, 20)
		require.Len(t, ds.Split.Train, 16)
		require.Len(t, ds.Split.Test, 4)

		for id, feature := range ds.Features {
			require.Equal(t, []float64{1, -1, -1, 0, 0, 0, 0, 0}, feature.Row(0))
			require.Equal(t, id.Class, ds.Labels[id])
		}
	})

	t.Run("split identifiers resolve in the tables", func(t *testing.T) {
		root := writeSamplesDataset(t, 1, 10)
		cfg := &experiment.Config{
			Dataset: root,
			Classes: 1,
			Samples: 10,
			Encoder: experiment.EncoderConfig{Kind: "directions", Length: 4},
		}

		ds, err := Load(context.Background(), cfg)
		require.NoError(t, err)
		for _, id := range ds.Split.Train {
			require.Contains(t, ds.Features, id)
		}
		for _, id := range ds.Split.Test {
			require.Contains(t, ds.Features, id)
		}
	})

	t.Run("collect policy returns a partial dataset with the error", func(t *testing.T) {
		root := writeSamplesDataset(t, 1, 4)
		require.NoError(t, os.Remove(filepath.Join(root, "0", "2.log")))

		cfg := &experiment.Config{
			Dataset:     root,
			Classes:     1,
			Samples:     4,
			ErrorPolicy: "collect",
			Encoder:     experiment.EncoderConfig{Kind: "directions", Length: 4},
		}

		ds, err := Load(context.Background(), cfg)
		require.Error(t, err)
		require.NotNil(t, ds)
		require.Len(t, ds.Features, 3)
		require.NotContains(t, ds.Features, trace.NewSampleID(0, 2))
	})

	t.Run("invalid dataset root fails fast", func(t *testing.T) {
		cfg := &experiment.Config{
			Dataset: filepath.Join(t.TempDir(), "missing"),
			Classes: 1,
			Samples: 1,
			Encoder: experiment.EncoderConfig{Kind: "directions", Length: 4},
		}

		_, err := Load(context.Background(), cfg)
		require.Error(t, err)
	})

	t.Run("loader options pass through", func(t *testing.T) {
		root := writeSamplesDataset(t, 1, 2)
		cfg := &experiment.Config{
			Dataset: root,
			Classes: 1,
			Samples: 2,
			Encoder: experiment.EncoderConfig{Kind: "directions", Length: 4},
		}

		ds, err := Load(context.Background(), cfg, dataset.WithWorkers(1))
		require.NoError(t, err)
		require.Len(t, ds.Features, 2)
	})
}
