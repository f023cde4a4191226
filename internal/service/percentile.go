package service

import "sort"

// Percentiles maps every net-marks value to its cumulative percentile:
// the share of attempts scoring at or below it, times 100, rounded to two
// decimals. Tied scores share a percentile.
func Percentiles(netMarks []float64) []float64 {
	n := len(netMarks)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	sorted := append([]float64(nil), netMarks...)
	sort.Float64s(sorted)

	for i, m := range netMarks {
		// first index holding a value greater than m == count of values <= m
		atOrBelow := sort.Search(n, func(j int) bool { return sorted[j] > m })
		out[i] = round2(float64(atOrBelow) / float64(n) * 100)
	}
	return out
}
