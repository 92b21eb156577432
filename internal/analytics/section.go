package analytics

import (
	"fmt"
	"strings"
)

// AggregateSections groups graded records into per-section buckets.
//
// The section key is the trimmed part label. Sentinel placeholder labels
// are excluded from aggregation entirely and surfaced as warnings.
// Records with an empty label go through the profile's keyword rules on
// sectionName; if that fails on a closed-set profile the record is
// dropped with a warning, otherwise it lands in the generic fallback
// bucket.
//
// Single pass; averages are computed only after the pass completes so
// they can never divide by a stale count.
func AggregateSections(records []QuestionRecord, graded []Correctness, profile *ExamProfile, sectionName string) (map[string]SectionBucket, []string) {
	if profile == nil {
		profile = &GenericProfile
	}

	buckets := make(map[string]SectionBucket)
	var warnings []string

	for i, r := range records {
		key := strings.TrimSpace(r.PartLabel)

		if key != "" && profile.IsSentinel(key) {
			warnings = append(warnings, fmt.Sprintf("question %d: placeholder section label %q excluded", r.QuestionNumber, key))
			continue
		}

		if key == "" {
			key = profile.DeriveSectionKey(sectionName)
			if key == "" {
				if len(profile.FixedSections) > 0 {
					warnings = append(warnings, fmt.Sprintf("question %d: section undeterminable for %s paper, dropped", r.QuestionNumber, profile.Name))
					continue
				}
				key = FallbackSection
			}
		}

		b := buckets[key]
		b.TotalCount++
		if i < len(graded) && graded[i] == Correct {
			b.CorrectCount++
		}
		if r.Guessed {
			b.GuessedCount++
		}
		b.TotalTimeSeconds += r.ElapsedSeconds
		buckets[key] = b
	}

	for key, b := range buckets {
		if b.TotalCount > 0 {
			b.AvgTimeSeconds = b.TotalTimeSeconds / float64(b.TotalCount)
			buckets[key] = b
		}
	}

	return buckets, warnings
}
