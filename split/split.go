// Package split deterministically partitions trace identifiers into
// train/validation/test sets.
//
// All strategies are pure functions of the dataset dimensions and an
// integer fold offset: no identifier is inspected, no randomness is
// involved, and repeated calls with identical arguments produce identical
// partitions. Rotating the fold steps the held-out slice through the data,
// which is how the experiments cross-validate.
package split

import "github.com/wfpipe/wfpipe/trace"

// Split holds the ordered, pairwise-disjoint identifier sets of one
// partition. Validation is empty for the two-way strategies. The union of
// the three sets equals the enumerated universe.
type Split struct {
	Train      []trace.ID
	Validation []trace.ID
	Test       []trace.ID
}

// Total returns the number of identifiers across all sets.
func (s Split) Total() int {
	return len(s.Train) + len(s.Validation) + len(s.Test)
}

// BySample partitions the samples layout 8:2 on individual samples: sample
// n of any class lands in train when (n + fold) mod 10 < 8, else in test.
// The modulus is fixed at 10 regardless of the sample count.
func BySample(classes, samples, fold int) Split {
	var out Split
	for c := 0; c < classes; c++ {
		for n := 0; n < samples; n++ {
			id := trace.NewSampleID(c, n)
			if mod(n+fold, 10) < 8 {
				out.Train = append(out.Train, id)
			} else {
				out.Test = append(out.Test, id)
			}
		}
	}

	return out
}

// BySubpage partitions the subpages layout on whole subpages, keeping every
// sample of a subpage on the same side: subpage p lands in train when
// (p + fold) mod subpages < subpages-2, so two subpages per class are held
// out for testing.
func BySubpage(classes, subpages, samples, fold int) Split {
	var out Split
	for c := 0; c < classes; c++ {
		for p := 0; p < subpages; p++ {
			for n := 0; n < samples; n++ {
				id := trace.NewSubpageID(c, p, n)
				if mod(p+fold, subpages) < subpages-2 {
					out.Train = append(out.Train, id)
				} else {
					out.Test = append(out.Test, id)
				}
			}
		}
	}

	return out
}

// mod is the non-negative remainder, matching the reference arithmetic for
// negative folds.
func mod(a, b int) int {
	return ((a % b) + b) % b
}
