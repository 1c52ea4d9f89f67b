package encode

// Feature is a fixed-shape numeric matrix produced by an encoder: one row of
// length L for the per-packet and time-series encodings, or two rows
// (sent/received) of width W for the aggregate-bin encodings.
//
// The shape is fixed at construction and never depends on the source trace:
// longer traces are truncated, shorter traces leave trailing zeros.
type Feature struct {
	rows int
	cols int
	data []float64
}

// NewFeature creates a zero-filled rows x cols feature.
func NewFeature(rows, cols int) *Feature {
	return &Feature{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// Rows returns the number of rows.
func (f *Feature) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *Feature) Cols() int { return f.cols }

// At returns the value at (row, col).
func (f *Feature) At(row, col int) float64 {
	return f.data[row*f.cols+col]
}

// Set stores v at (row, col).
func (f *Feature) Set(row, col int, v float64) {
	f.data[row*f.cols+col] = v
}

// Add accumulates v into (row, col).
func (f *Feature) Add(row, col int, v float64) {
	f.data[row*f.cols+col] += v
}

// Row returns the backing slice of one row. The slice aliases the feature;
// callers that mutate it mutate the feature.
func (f *Feature) Row(row int) []float64 {
	return f.data[row*f.cols : (row+1)*f.cols]
}

// Data returns the backing row-major slice. The slice aliases the feature.
func (f *Feature) Data() []float64 {
	return f.data
}
