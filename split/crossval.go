package split

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wfpipe/wfpipe/errs"
	"github.com/wfpipe/wfpipe/trace"
)

// Offsets holds one class's cross-validation offsets: which subpage starts
// as test and which as validation before fold rotation.
type Offsets struct {
	Test       int
	Validation int
}

// Table supplies per-class offsets for ByTable, one row per class.
type Table []Offsets

// LoadTable reads a cross-validation table file: one line per class, two
// comma-separated integers (test offset, validation offset). A missing file
// is errs.ErrMissingTable naming the path.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingTable, path)
		}

		return nil, fmt.Errorf("cross-validation table %s: %w", path, err)
	}

	table, err := ParseTable(string(data))
	if err != nil {
		return nil, fmt.Errorf("cross-validation table %s: %w", path, err)
	}

	return table, nil
}

// ParseTable parses cross-validation table text. Blank lines are ignored;
// any other line must carry exactly two integer fields.
func ParseTable(text string) (Table, error) {
	var table Table
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want 2", errs.ErrInvalidConfig, i+1, len(fields))
		}

		test, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", errs.ErrInvalidConfig, i+1, err)
		}
		validation, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", errs.ErrInvalidConfig, i+1, err)
		}

		table = append(table, Offsets{Test: test, Validation: validation})
	}

	return table, nil
}

// ByTable partitions the subpages layout 8:1:1 using per-class offsets:
// for each class the table's test and validation offsets are rotated by
// fold mod subpages, and each subpage is routed to test, validation, or
// train accordingly.
//
// The table must supply at least one row per class.
func ByTable(classes, subpages, samples, fold int, table Table) (Split, error) {
	if len(table) < classes {
		return Split{}, fmt.Errorf("%w: cross-validation table has %d rows, need %d", errs.ErrInvalidConfig, len(table), classes)
	}

	var out Split
	for c := 0; c < classes; c++ {
		testIndex := mod(table[c].Test+fold, subpages)
		validationIndex := mod(table[c].Validation+fold, subpages)
		for p := 0; p < subpages; p++ {
			for n := 0; n < samples; n++ {
				id := trace.NewSubpageID(c, p, n)
				switch p {
				case testIndex:
					out.Test = append(out.Test, id)
				case validationIndex:
					out.Validation = append(out.Validation, id)
				default:
					out.Train = append(out.Train, id)
				}
			}
		}
	}

	return out, nil
}
