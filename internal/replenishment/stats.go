// Package replenishment computes demand statistics and reorder signals
// from a product's sales history. All functions are pure and safe for
// concurrent use.
package replenishment

import "math"

// Average returns the arithmetic mean of the sales history. An empty
// history means no demand signal yet and yields 0.
func Average(history []int64) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum int64
	for _, v := range history {
		sum += v
	}
	return float64(sum) / float64(len(history))
}

// StdDev returns the population standard deviation of the sales history.
// Histories with fewer than two samples have no measurable variability
// and yield 0.
func StdDev(history []int64) float64 {
	if len(history) < 2 {
		return 0
	}
	mean := Average(history)
	var sq float64
	for _, v := range history {
		d := float64(v) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(history)))
}

// Round2 rounds a statistic to two decimals. Cached demand statistics are
// persisted at this precision, and the calculator consumes the cached
// values, so downstream figures stay reproducible from what readers see.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
