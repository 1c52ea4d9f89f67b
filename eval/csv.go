package eval

import (
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader is the fixed result header. The extra column carries a free-form
// run annotation such as the fold or encoder name.
var csvHeader = []string{"th", "accuracy", "tp", "fp", "fn", "extra"}

// WriteCSV writes sweep rows as CSV with the header
// th,accuracy,tp,fp,fn,extra. The same extra string is repeated on every
// row so result files from different runs can be concatenated and still
// tell their rows apart.
func WriteCSV(w io.Writer, rows []Row, extra string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			formatFloat(row.Threshold),
			formatFloat(row.Accuracy),
			strconv.Itoa(row.TP),
			strconv.Itoa(row.FP),
			strconv.Itoa(row.FN),
			extra,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
