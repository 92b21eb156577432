package analytics

// InterpolatePercentile maps a scaled score to a population percentile
// via linear interpolation over a cumulative distribution table sorted
// ascending by score. Scores outside the table clamp to the boundary
// rows; a zero-width bracket returns the lower row's percent rather
// than dividing by zero. The result is clamped to [0,100] as a guard
// against malformed tables. Returns nil for an empty table.
func InterpolatePercentile(table []PercentileRow, score float64) *float64 {
	if len(table) == 0 {
		return nil
	}

	if score <= table[0].Score {
		return clampPercent(table[0].CumulativePercent)
	}
	last := table[len(table)-1]
	if score >= last.Score {
		return clampPercent(last.CumulativePercent)
	}

	for i := 1; i < len(table); i++ {
		lo, hi := table[i-1], table[i]
		if score > hi.Score {
			continue
		}
		if hi.Score == lo.Score {
			return clampPercent(lo.CumulativePercent)
		}
		frac := (score - lo.Score) / (hi.Score - lo.Score)
		return clampPercent(lo.CumulativePercent + (hi.CumulativePercent-lo.CumulativePercent)*frac)
	}

	return clampPercent(last.CumulativePercent)
}

// InterpolateScore is the inverse of InterpolatePercentile: it brackets
// on the cumulative axis and interpolates the corresponding score. Used
// to translate a percentile achieved under one scoring regime into an
// equivalent score under a different table version.
func InterpolateScore(table []PercentileRow, percentile float64) *float64 {
	if len(table) == 0 {
		return nil
	}

	if percentile <= table[0].CumulativePercent {
		v := table[0].Score
		return &v
	}
	last := table[len(table)-1]
	if percentile >= last.CumulativePercent {
		v := last.Score
		return &v
	}

	for i := 1; i < len(table); i++ {
		lo, hi := table[i-1], table[i]
		if percentile > hi.CumulativePercent {
			continue
		}
		if hi.CumulativePercent == lo.CumulativePercent {
			v := lo.Score
			return &v
		}
		frac := (percentile - lo.CumulativePercent) / (hi.CumulativePercent - lo.CumulativePercent)
		v := lo.Score + (hi.Score-lo.Score)*frac
		return &v
	}

	v := last.Score
	return &v
}

func clampPercent(p float64) *float64 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return &p
}
