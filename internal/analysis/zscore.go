package analysis

import "math"

// ZScorePoint pairs a month's raw play count with its z-score over the
// global month axis.
type ZScorePoint struct {
	Plays int
	Z     float64
}

// ZScoreSeries scores one entity's monthly counts against the global month
// axis. Months absent from the entity's sparse series count as zero plays.
// When the standard deviation is zero, including the single-month axis,
// every z-score is exactly 0.0 rather than NaN.
func ZScoreSeries(monthly map[string]int, months []string) map[string]ZScorePoint {
	if len(months) == 0 {
		return map[string]ZScorePoint{}
	}

	counts := denseCounts(monthly, months)
	mean, sd := meanStddev(counts)

	series := make(map[string]ZScorePoint, len(months))
	for i, m := range months {
		z := 0.0
		if sd != 0 {
			z = (float64(counts[i]) - mean) / sd
		}
		series[m] = ZScorePoint{Plays: counts[i], Z: z}
	}
	return series
}

// denseCounts materializes a sparse monthly map into a vector over the
// full axis, zero-filling the gaps.
func denseCounts(monthly map[string]int, months []string) []int {
	counts := make([]int, len(months))
	for i, m := range months {
		counts[i] = monthly[m]
	}
	return counts
}

// meanStddev returns the mean and population standard deviation
// (denominator N). A vector shorter than two elements has zero deviation.
func meanStddev(counts []int) (mean, sd float64) {
	n := float64(len(counts))
	var sum float64
	for _, v := range counts {
		sum += float64(v)
	}
	mean = sum / n

	if len(counts) < 2 {
		return mean, 0
	}

	var sumSq float64
	for _, v := range counts {
		d := float64(v) - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / n)
}
