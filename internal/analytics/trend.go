package analytics

import "sort"

// TrendPoint is one smoothed sample of the rolling accuracy/speed line.
type TrendPoint struct {
	Index          int     `json:"index"`
	Accuracy       float64 `json:"accuracy"`        // 0..1 over the window
	AvgTimeSeconds float64 `json:"avg_time_seconds"`
}

// RollingWindow returns the half-width used for trend smoothing:
// max(3, n/10).
func RollingWindow(n int) int {
	w := n / 10
	if w < 3 {
		w = 3
	}
	return w
}

// RollingTrend computes a smoothed accuracy and speed line: for each
// index the mean over a symmetric window [i-w, i+w] clipped to the
// array bounds. Ungradeable (Unknown) records contribute time but not
// accuracy; a window with zero gradeable samples carries the previous
// point's accuracy forward so the line never divides by zero.
func RollingTrend(records []QuestionRecord, graded []Correctness) []TrendPoint {
	n := len(records)
	if n == 0 {
		return nil
	}
	w := RollingWindow(n)

	points := make([]TrendPoint, n)
	prevAccuracy := 0.0

	for i := 0; i < n; i++ {
		lo, hi := i-w, i+w
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}

		gradeable, correct := 0, 0
		timeSum := 0.0
		for j := lo; j <= hi; j++ {
			timeSum += records[j].ElapsedSeconds
			if j < len(graded) && graded[j] != Unknown {
				gradeable++
				if graded[j] == Correct {
					correct++
				}
			}
		}

		p := TrendPoint{Index: i}
		if gradeable > 0 {
			p.Accuracy = float64(correct) / float64(gradeable)
			prevAccuracy = p.Accuracy
		} else {
			p.Accuracy = prevAccuracy
		}
		p.AvgTimeSeconds = timeSum / float64(hi-lo+1)
		points[i] = p
	}

	return points
}

// StreakSummary reports the longest consecutive runs in the graded log.
// Unknown results reset both runs.
type StreakSummary struct {
	LongestCorrect   int `json:"longest_correct"`
	LongestIncorrect int `json:"longest_incorrect"`
}

// Streaks scans the graded log once and returns the longest correct and
// incorrect runs.
func Streaks(graded []Correctness) StreakSummary {
	var s StreakSummary
	curCorrect, curIncorrect := 0, 0

	for _, g := range graded {
		switch g {
		case Correct:
			curCorrect++
			curIncorrect = 0
		case Incorrect:
			curIncorrect++
			curCorrect = 0
		default:
			curCorrect, curIncorrect = 0, 0
		}
		if curCorrect > s.LongestCorrect {
			s.LongestCorrect = curCorrect
		}
		if curIncorrect > s.LongestIncorrect {
			s.LongestIncorrect = curIncorrect
		}
	}

	return s
}

// ExtremeSummary holds the fastest and slowest answered questions.
type ExtremeSummary struct {
	Fastest []QuestionRecord `json:"fastest"`
	Slowest []QuestionRecord `json:"slowest"`
}

// extremeCount is how many outliers each side of Extremes reports.
const extremeCount = 3

// Extremes returns the records with the smallest and largest nonzero
// elapsed times, up to three per side. Ties keep original index order.
func Extremes(records []QuestionRecord) ExtremeSummary {
	var timed []QuestionRecord
	for _, r := range records {
		if r.ElapsedSeconds > 0 {
			timed = append(timed, r)
		}
	}

	asc := make([]QuestionRecord, len(timed))
	copy(asc, timed)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].ElapsedSeconds < asc[j].ElapsedSeconds
	})

	desc := make([]QuestionRecord, len(timed))
	copy(desc, timed)
	sort.SliceStable(desc, func(i, j int) bool {
		return desc[i].ElapsedSeconds > desc[j].ElapsedSeconds
	})

	return ExtremeSummary{
		Fastest: firstN(asc, extremeCount),
		Slowest: firstN(desc, extremeCount),
	}
}

func firstN(records []QuestionRecord, n int) []QuestionRecord {
	if len(records) < n {
		n = len(records)
	}
	out := make([]QuestionRecord, n)
	copy(out, records[:n])
	return out
}

// GuessGroup summarizes one side of the guessed/confident split.
type GuessGroup struct {
	Count       int     `json:"count"`
	Accuracy    float64 `json:"accuracy"`      // Over gradeable records only
	TimeShare   float64 `json:"time_share"`    // Fraction of total session time
	TimeSeconds float64 `json:"time_seconds"`
}

// GuessSplit compares guessed against confident answers.
type GuessSplit struct {
	Guessed   GuessGroup `json:"guessed"`
	Confident GuessGroup `json:"confident"`
}

// SplitByGuess partitions the log by the self-reported guess flag and
// summarizes accuracy and time spent on each side.
func SplitByGuess(records []QuestionRecord, graded []Correctness) GuessSplit {
	var split GuessSplit
	var guessedCorrect, guessedGradeable, confidentCorrect, confidentGradeable int
	totalTime := 0.0

	for i, r := range records {
		totalTime += r.ElapsedSeconds
		g := Unknown
		if i < len(graded) {
			g = graded[i]
		}
		if r.Guessed {
			split.Guessed.Count++
			split.Guessed.TimeSeconds += r.ElapsedSeconds
			if g != Unknown {
				guessedGradeable++
				if g == Correct {
					guessedCorrect++
				}
			}
		} else {
			split.Confident.Count++
			split.Confident.TimeSeconds += r.ElapsedSeconds
			if g != Unknown {
				confidentGradeable++
				if g == Correct {
					confidentCorrect++
				}
			}
		}
	}

	if guessedGradeable > 0 {
		split.Guessed.Accuracy = float64(guessedCorrect) / float64(guessedGradeable)
	}
	if confidentGradeable > 0 {
		split.Confident.Accuracy = float64(confidentCorrect) / float64(confidentGradeable)
	}
	if totalTime > 0 {
		split.Guessed.TimeShare = split.Guessed.TimeSeconds / totalTime
		split.Confident.TimeShare = split.Confident.TimeSeconds / totalTime
	}

	return split
}
