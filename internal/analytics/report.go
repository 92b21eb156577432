package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// OverallKey indexes the whole-paper percentile table in the table set
// passed to BuildReport.
const OverallKey = "overall"

// SectionResult is one section's aggregate enriched with its scaled
// score and percentile. Scale.Scaled and Percentile stay nil when no
// table covers the section.
type SectionResult struct {
	SectionBucket
	Scale      ScaleResult `json:"scale"`
	Percentile *float64    `json:"percentile,omitempty"`
}

// SessionReport is the full derived view of one practice session. It is
// a pure projection of the answer log plus externally supplied tables:
// recomputed fresh on every change, never the source of truth.
type SessionReport struct {
	Exam           string                   `json:"exam"`
	TotalQuestions int                      `json:"total_questions"`
	RawCorrect     int                      `json:"raw_correct"`
	ScaledTotal    *float64                 `json:"scaled_total,omitempty"`
	Percentile     *float64                 `json:"percentile,omitempty"`
	Sections       map[string]SectionResult `json:"sections"`
	Warnings       []string                 `json:"warnings,omitempty"`
	Trend          []TrendPoint             `json:"trend"`
	Streaks        StreakSummary            `json:"streaks"`
	Extremes       ExtremeSummary           `json:"extremes"`
	Guess          GuessSplit               `json:"guess"`
	Time           TimeStats                `json:"time"`
}

// BuildReport runs the whole pipeline over one session snapshot:
// grading, section aggregation, score conversion, percentile lookup and
// the trend reducers. Every input arrives as a parameter; nothing is
// read from ambient state and nothing is mutated.
//
// percentiles maps section keys (plus OverallKey for the whole paper)
// to their distribution tables. Missing tables simply leave the
// corresponding fields nil.
func BuildReport(
	records []QuestionRecord,
	profile *ExamProfile,
	sectionName string,
	conversions []ConversionRow,
	percentiles map[string][]PercentileRow,
) *SessionReport {
	if profile == nil {
		profile = &GenericProfile
	}

	graded := DeriveAll(records)
	buckets, warnings := AggregateSections(records, graded, profile, sectionName)

	report := &SessionReport{
		Exam:           profile.Name,
		TotalQuestions: len(records),
		Sections:       make(map[string]SectionResult, len(buckets)),
		Warnings:       warnings,
		Trend:          RollingTrend(records, graded),
		Streaks:        Streaks(graded),
		Extremes:       Extremes(records),
		Guess:          SplitByGuess(records, graded),
		Time:           ComputeTimeStats(records),
	}
	for _, g := range graded {
		if g == Correct {
			report.RawCorrect++
		}
	}

	// Deterministic section order for the warnings produced below.
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var scaledSum float64
	scaledAny := false

	for _, key := range keys {
		bucket := buckets[key]
		result := SectionResult{SectionBucket: bucket}

		result.Scale = ScaleSection(profile, conversions, PartLetter(key), key, sectionName, bucket.CorrectCount)
		if !result.Scale.Matched && len(conversions) > 0 {
			report.Warnings = append(report.Warnings, "no conversion rows matched section "+key)
		}
		if result.Scale.Scaled != nil {
			scaledSum += *result.Scale.Scaled
			scaledAny = true
			result.Percentile = InterpolatePercentile(percentiles[key], *result.Scale.Scaled)
		}

		report.Sections[key] = result
	}

	if scaledAny {
		report.ScaledTotal = &scaledSum
		report.Percentile = InterpolatePercentile(percentiles[OverallKey], scaledSum)
	}

	return report
}

// PartLetter extracts the part letter from labels like "Part A" or
// "Part B: Physics". Returns "" when the label has no such prefix.
func PartLetter(label string) string {
	trimmed := strings.TrimSpace(label)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "part") {
		return ""
	}
	rest := strings.TrimSpace(trimmed[len("part"):])
	if rest == "" {
		return ""
	}
	r := rune(rest[0])
	if !unicode.IsLetter(r) {
		return ""
	}
	return strings.ToUpper(string(r))
}
