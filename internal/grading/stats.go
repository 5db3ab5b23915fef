package grading

import "slices"

// Stats summarizes a set of scores.
type Stats struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median int
	Sum    int
}

// Summarize computes score statistics. The median is the upper middle value
// for even counts.
func Summarize(scores []int) Stats {
	if len(scores) == 0 {
		return Stats{}
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)

	var sum int
	for _, s := range sorted {
		sum += s
	}
	return Stats{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   float64(sum) / float64(len(sorted)),
		Median: sorted[len(sorted)/2],
		Sum:    sum,
	}
}
