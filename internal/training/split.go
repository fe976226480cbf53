package training

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// InsufficientDataError is returned when a class is too small to appear on
// both sides of the stratified split.
type InsufficientDataError struct {
	Label string
	Count int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: class %q has %d example(s), need at least 2", e.Label, e.Count)
}

// Split holds row indices into the combined dataset.
type Split struct {
	Train []int
	Test  []int
}

// StratifiedSplit partitions rows so each label keeps roughly testFraction
// of its rows in Test and at least one row on each side. The result depends
// only on labels, testFraction and seed.
func StratifiedSplit(labels []string, testFraction float64, seed uint64) (Split, error) {
	byLabel := make(map[string][]int)
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], i)
	}

	names := make([]string, 0, len(byLabel))
	for l := range byLabel {
		names = append(names, l)
	}
	sort.Strings(names)

	for _, l := range names {
		if n := len(byLabel[l]); n < 2 {
			return Split{}, &InsufficientDataError{Label: l, Count: n}
		}
	}

	rng := rand.New(rand.NewPCG(seed, 0x5eed))
	var s Split
	for _, l := range names {
		rows := byLabel[l]
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

		nTest := int(math.Round(float64(len(rows)) * testFraction))
		if nTest < 1 {
			nTest = 1
		}
		if nTest > len(rows)-1 {
			nTest = len(rows) - 1
		}
		s.Test = append(s.Test, rows[:nTest]...)
		s.Train = append(s.Train, rows[nTest:]...)
	}

	rng.Shuffle(len(s.Train), func(i, j int) { s.Train[i], s.Train[j] = s.Train[j], s.Train[i] })
	return s, nil
}
