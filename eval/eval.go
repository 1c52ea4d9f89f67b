// Package eval scores classifier predictions across a fixed confidence
// threshold sweep.
//
// A prediction counts as a true positive only when its confidence (the
// maximum probability) reaches the threshold and the argmax class matches
// the true label. A confident wrong answer is a false positive, an
// unconfident one a false negative, so every prediction lands in exactly
// one bucket and accuracy is tp/(tp+fp+fn) over all predictions.
package eval

import (
	"fmt"
	"math"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/internal/round"
)

// sweepPoints is the number of non-zero thresholds in the sweep.
const sweepPoints = 15

// Prediction is one classifier output: a per-class probability vector and
// the true class label.
type Prediction struct {
	Probs []float64
	Label int
}

// ClassStats counts one class's outcomes at a single threshold: Total is how
// often the class appeared as the true label, Right how often it was a true
// positive.
type ClassStats struct {
	Right int
	Total int
}

// Recall returns Right/Total, or 0 when the class never appeared.
func (c ClassStats) Recall() float64 {
	if c.Total == 0 {
		return 0
	}

	return float64(c.Right) / float64(c.Total)
}

// Row holds the metrics of one threshold in a sweep. PerClass has an entry
// for every class observed as a true label, even when Right is zero.
type Row struct {
	Threshold float64
	TP        int
	FP        int
	FN        int
	Accuracy  float64
	PerClass  map[int]ClassStats
}

// Thresholds returns the fixed sweep schedule: 0 followed by 15 points
// 1 - 10^-x with x spaced evenly over [0.05, 2], each rounded to four
// decimals. The spacing packs points toward high confidence, where the
// accuracy/recall trade-off actually moves.
func Thresholds() []float64 {
	out := make([]float64, 0, sweepPoints+1)
	out = append(out, 0)
	for i := 0; i < sweepPoints; i++ {
		exp := 0.05 + float64(i)*(2.0-0.05)/float64(sweepPoints-1)
		out = append(out, round.To4(1.0-1.0/math.Pow(10, exp)))
	}

	return out
}

// Metrics scores the predictions at one threshold.
func Metrics(threshold float64, predictions []Prediction) (Row, error) {
	if len(predictions) == 0 {
		return Row{}, errs.ErrEmptySweep
	}

	row := Row{
		Threshold: threshold,
		PerClass:  make(map[int]ClassStats),
	}
	for i, p := range predictions {
		if len(p.Probs) == 0 {
			return Row{}, fmt.Errorf("%w: prediction %d", errs.ErrEmptyPrediction, i)
		}

		predicted, confidence := argmax(p.Probs)

		stats := row.PerClass[p.Label]
		stats.Total++
		row.PerClass[p.Label] = stats

		switch {
		case confidence >= threshold && predicted == p.Label:
			row.TP++
			stats.Right++
			row.PerClass[p.Label] = stats
		case confidence >= threshold:
			row.FP++
		default:
			row.FN++
		}
	}
	row.Accuracy = round.To4(float64(row.TP) / float64(row.TP+row.FP+row.FN))

	return row, nil
}

// Sweep scores the predictions at every threshold in the schedule, in order.
func Sweep(predictions []Prediction) ([]Row, error) {
	thresholds := Thresholds()
	rows := make([]Row, 0, len(thresholds))
	for _, th := range thresholds {
		row, err := Metrics(th, predictions)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// argmax returns the index of the first maximum and its value.
func argmax(probs []float64) (int, float64) {
	best := 0
	for i, v := range probs {
		if v > probs[best] {
			best = i
		}
	}

	return best, probs[best]
}
