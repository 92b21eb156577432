package analytics

import "strings"

// TieBreak selects how an off-table raw score maps to a row.
type TieBreak string

// TieBreakNearest picks the row with the closest raw score. Equidistant
// ties resolve to the LOWER raw score: conversion tables are
// monotonically increasing, so the lower row never overstates the
// result.
const TieBreakNearest TieBreak = "nearest"

// ScaleResult carries a scaled score plus the part-name resolution
// outcome so callers can show a warning instead of a silently wrong
// score.
type ScaleResult struct {
	PartName string   `json:"part_name"`
	Scaled   *float64 `json:"scaled,omitempty"`
	Matched  bool     `json:"matched"`
}

// ScaleScore maps a raw correct count to a scaled score for one part of
// a conversion table. Returns nil when the table has no rows for
// partName — "no conversion available" is not zero.
func ScaleScore(table []ConversionRow, partName string, rawScore int, tieBreak TieBreak) *float64 {
	var best *ConversionRow
	bestDist := 0

	for i := range table {
		row := &table[i]
		if !strings.EqualFold(row.PartName, partName) {
			continue
		}
		if row.RawScore == rawScore {
			v := row.ScaledScore
			return &v
		}
		if tieBreak != TieBreakNearest {
			continue
		}
		dist := row.RawScore - rawScore
		if dist < 0 {
			dist = -dist
		}
		switch {
		case best == nil, dist < bestDist:
			best, bestDist = row, dist
		case dist == bestDist && row.RawScore < best.RawScore:
			best = row
		}
	}

	if best == nil {
		return nil
	}
	v := best.ScaledScore
	return &v
}

// ResolvePartName finds the conversion-table part name for a section.
//
// Candidates are generated in priority order: the profile's part-letter
// alias, the generic "Part X" form, the raw label, then the session's
// free-text name. The first candidate with an exact (case-insensitive)
// match against a table row wins. With no match at all, the
// highest-priority candidate is returned as a best-effort label with
// matched=false.
func ResolvePartName(profile *ExamProfile, partLetter, rawLabel, sectionName string, table []ConversionRow) (string, bool) {
	if profile == nil {
		profile = &GenericProfile
	}

	var candidates []string
	letter := strings.ToUpper(strings.TrimSpace(partLetter))
	if letter != "" {
		if alias, ok := profile.PartAliases[letter]; ok {
			candidates = append(candidates, alias)
		}
		candidates = append(candidates, "Part "+letter)
	}
	if l := strings.TrimSpace(rawLabel); l != "" {
		candidates = append(candidates, l)
	}
	if n := strings.TrimSpace(sectionName); n != "" {
		candidates = append(candidates, n)
	}

	for _, cand := range candidates {
		for i := range table {
			if strings.EqualFold(table[i].PartName, cand) {
				return table[i].PartName, true
			}
		}
	}

	if len(candidates) == 0 {
		return "", false
	}
	return candidates[0], false
}

// ScaleSection resolves the part name and converts a section's raw
// correct count in one step.
func ScaleSection(profile *ExamProfile, table []ConversionRow, partLetter, rawLabel, sectionName string, rawScore int) ScaleResult {
	name, matched := ResolvePartName(profile, partLetter, rawLabel, sectionName, table)
	res := ScaleResult{PartName: name, Matched: matched}
	if !matched {
		return res
	}
	res.Scaled = ScaleScore(table, name, rawScore, TieBreakNearest)
	return res
}
