package benchmark

import "fmt"

// Comparison is the change in average sort time for one size between two
// suites.
type Comparison struct {
	Size        int
	AverageDiff float64 // Percentage change of the average
	Comparable  bool    // false when the previous average was 0 ms
	Prev        TrialResult
	Curr        TrialResult
}

// Compare pairs results of two suites by size. Repeated sizes are paired in
// the order they appear. Sizes missing from either suite are skipped.
func Compare(prev, curr Suite) []Comparison {
	prevBySize := make(map[int][]TrialResult)
	for _, r := range prev.Results {
		prevBySize[r.Size] = append(prevBySize[r.Size], r)
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		queue := prevBySize[c.Size]
		if len(queue) == 0 {
			continue
		}
		p := queue[0]
		prevBySize[c.Size] = queue[1:]

		comp := Comparison{Size: c.Size, Prev: p, Curr: c}
		if base := p.Average(); base > 0 {
			comp.AverageDiff = (c.Average() - base) / base * 100
			comp.Comparable = true
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Regressions returns the comparisons slower than threshold percent.
func Regressions(comps []Comparison, threshold float64) []Comparison {
	var out []Comparison
	for _, c := range comps {
		if c.Comparable && c.AverageDiff > threshold {
			out = append(out, c)
		}
	}
	return out
}

func (c Comparison) String() string {
	if !c.Comparable {
		return fmt.Sprintf("size %d: n/a", c.Size)
	}
	return fmt.Sprintf("size %d: %+.2f%% average ms", c.Size, c.AverageDiff)
}
