package analytics

import "sort"

// TimeStats holds order-statistic summaries of per-question times.
type TimeStats struct {
	MedianSeconds float64 `json:"median_seconds"`
	P25Seconds    float64 `json:"p25_seconds"`
	P75Seconds    float64 `json:"p75_seconds"`
	TotalSeconds  float64 `json:"total_seconds"`
}

// ComputeTimeStats summarizes elapsed times across the session.
// Median is the mean of the two middle elements for even counts.
func ComputeTimeStats(records []QuestionRecord) TimeStats {
	var stats TimeStats
	times := make([]float64, 0, len(records))
	for _, r := range records {
		times = append(times, r.ElapsedSeconds)
		stats.TotalSeconds += r.ElapsedSeconds
	}
	if len(times) == 0 {
		return stats
	}
	sort.Float64s(times)

	stats.MedianSeconds = median(times)
	stats.P25Seconds = percentileOf(times, 25)
	stats.P75Seconds = percentileOf(times, 75)
	return stats
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// percentileOf computes the p-th percentile of a sorted slice with
// linear interpolation between ranks.
func percentileOf(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
