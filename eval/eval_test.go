package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfpipe/wfpipe/errs"
)

func TestThresholds(t *testing.T) {
	want := []float64{
		0, 0.1087, 0.3533, 0.5307, 0.6595, 0.7529, 0.8207, 0.8699,
		0.9056, 0.9315, 0.9503, 0.9639, 0.9738, 0.981, 0.9862, 0.99,
	}
	require.Equal(t, want, Thresholds())
}

func TestMetrics(t *testing.T) {
	t.Run("threshold zero counts every confident answer", func(t *testing.T) {
		predictions := []Prediction{
			{Probs: []float64{0.6, 0.4}, Label: 0},
			{Probs: []float64{0.7, 0.3}, Label: 1},
		}

		row, err := Metrics(0, predictions)
		require.NoError(t, err)
		require.Equal(t, 1, row.TP)
		require.Equal(t, 1, row.FP)
		require.Equal(t, 0, row.FN)
		require.Equal(t, 0.5, row.Accuracy)
	})

	t.Run("unconfident predictions become false negatives", func(t *testing.T) {
		predictions := []Prediction{
			{Probs: []float64{0.6, 0.4}, Label: 0},
			{Probs: []float64{0.7, 0.3}, Label: 1},
		}

		row, err := Metrics(0.99, predictions)
		require.NoError(t, err)
		require.Equal(t, 0, row.TP)
		require.Equal(t, 0, row.FP)
		require.Equal(t, 2, row.FN)
		require.Equal(t, 0.0, row.Accuracy)
	})

	t.Run("argmax takes the first maximum", func(t *testing.T) {
		row, err := Metrics(0, []Prediction{{Probs: []float64{0.5, 0.5}, Label: 0}})
		require.NoError(t, err)
		require.Equal(t, 1, row.TP)

		row, err = Metrics(0, []Prediction{{Probs: []float64{0.5, 0.5}, Label: 1}})
		require.NoError(t, err)
		require.Equal(t, 1, row.FP)
	})

	t.Run("per-class stats count every observed label", func(t *testing.T) {
		predictions := []Prediction{
			{Probs: []float64{0.9, 0.1}, Label: 0},
			{Probs: []float64{0.9, 0.1}, Label: 0},
			{Probs: []float64{0.9, 0.1}, Label: 1},
		}

		row, err := Metrics(0, predictions)
		require.NoError(t, err)
		require.Equal(t, ClassStats{Right: 2, Total: 2}, row.PerClass[0])
		require.Equal(t, ClassStats{Right: 0, Total: 1}, row.PerClass[1])
		require.Equal(t, 1.0, row.PerClass[0].Recall())
		require.Equal(t, 0.0, row.PerClass[1].Recall())
	})

	t.Run("accuracy is rounded to four decimals", func(t *testing.T) {
		predictions := []Prediction{
			{Probs: []float64{0.9, 0.1}, Label: 0},
			{Probs: []float64{0.9, 0.1}, Label: 0},
			{Probs: []float64{0.9, 0.1}, Label: 1},
		}

		row, err := Metrics(0, predictions)
		require.NoError(t, err)
		require.Equal(t, 0.6667, row.Accuracy)
	})

	t.Run("no predictions", func(t *testing.T) {
		_, err := Metrics(0, nil)
		require.ErrorIs(t, err, errs.ErrEmptySweep)
	})

	t.Run("empty probability vector", func(t *testing.T) {
		_, err := Metrics(0, []Prediction{{Probs: nil, Label: 0}})
		require.ErrorIs(t, err, errs.ErrEmptyPrediction)
	})
}

func TestSweep(t *testing.T) {
	predictions := []Prediction{
		{Probs: []float64{0.95, 0.05}, Label: 0},
		{Probs: []float64{0.6, 0.4}, Label: 0},
		{Probs: []float64{0.3, 0.7}, Label: 1},
	}

	rows, err := Sweep(predictions)
	require.NoError(t, err)
	require.Len(t, rows, 16)
	require.Equal(t, 0.0, rows[0].Threshold)
	require.Equal(t, 0.99, rows[15].Threshold)

	// Raising the threshold can only convert positives into false negatives.
	for i := 1; i < len(rows); i++ {
		require.LessOrEqual(t, rows[i].TP, rows[i-1].TP)
		require.LessOrEqual(t, rows[i].FP, rows[i-1].FP)
		require.GreaterOrEqual(t, rows[i].FN, rows[i-1].FN)
	}

	_, err = Sweep(nil)
	require.ErrorIs(t, err, errs.ErrEmptySweep)
}
