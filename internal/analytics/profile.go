package analytics

import "strings"

// LabelRule derives a section key from a free-text section name.
// The name must contain every Contains keyword and none of the Excludes
// keywords (all case-insensitive) for the rule to fire.
type LabelRule struct {
	Contains []string
	Excludes []string
	Key      string
}

// ExamProfile is the per-exam configuration consumed by the aggregator
// and the part-name resolver. New exam variants are additive data, not
// code changes.
type ExamProfile struct {
	Name string

	// FixedSections, when non-empty, closes the section set: records whose
	// label cannot be resolved to one of these keys are dropped with a
	// warning instead of being folded into a catch-all bucket.
	FixedSections []string

	// LabelRules derive a section key from the session's free-text name
	// when a record carries no part label. First match wins.
	LabelRules []LabelRule

	// PartAliases maps a part letter ("A", "B", ...) to the part name
	// used by this exam's conversion tables.
	PartAliases map[string]string

	// SentinelLabels are header-only placeholder labels that mark "no real
	// section". Matching records are excluded from aggregation entirely.
	SentinelLabels []string
}

// FallbackSection is the catch-all bucket for open-set profiles.
const FallbackSection = "Section"

// ESATProfile covers the ESAT-style papers the product ships with.
var ESATProfile = ExamProfile{
	Name: "ESAT",
	FixedSections: []string{
		"Mathematics 1",
		"Mathematics 2",
		"Physics",
		"Chemistry",
		"Biology",
	},
	LabelRules: []LabelRule{
		{Contains: []string{"advanced"}, Key: "Mathematics 2"},
		{Contains: []string{"mathematics"}, Excludes: []string{"advanced"}, Key: "Mathematics 1"},
		{Contains: []string{"maths"}, Excludes: []string{"advanced"}, Key: "Mathematics 1"},
		{Contains: []string{"physics"}, Key: "Physics"},
		{Contains: []string{"chemistry"}, Key: "Chemistry"},
		{Contains: []string{"biology"}, Key: "Biology"},
	},
	PartAliases: map[string]string{
		"A": "Mathematics 1",
		"B": "Mathematics 2",
		"C": "Physics",
		"D": "Chemistry",
		"E": "Biology",
	},
	SentinelLabels: []string{"No Section", "Header"},
}

// GenericProfile is the open-set default: unknown labels fall back to a
// single generic bucket rather than being dropped.
var GenericProfile = ExamProfile{
	Name:           "Generic",
	SentinelLabels: []string{"No Section", "Header"},
}

var profiles = map[string]*ExamProfile{
	"ESAT": &ESATProfile,
}

// ProfileFor returns the profile registered for an exam name, falling
// back to the generic open-set profile.
func ProfileFor(exam string) *ExamProfile {
	if p, ok := profiles[strings.ToUpper(strings.TrimSpace(exam))]; ok {
		return p
	}
	return &GenericProfile
}

// IsSentinel reports whether a trimmed label matches one of the
// profile's placeholder labels.
func (p *ExamProfile) IsSentinel(label string) bool {
	for _, s := range p.SentinelLabels {
		if strings.EqualFold(label, s) {
			return true
		}
	}
	return false
}

// DeriveSectionKey applies the profile's keyword rules to a free-text
// section name. Returns "" when no rule matches.
func (p *ExamProfile) DeriveSectionKey(sectionName string) string {
	name := strings.ToLower(sectionName)
	for _, rule := range p.LabelRules {
		if rule.matches(name) {
			return rule.Key
		}
	}
	return ""
}

// IsFixedSection reports whether key belongs to the profile's closed
// section set. Always false for open-set profiles.
func (p *ExamProfile) IsFixedSection(key string) bool {
	for _, s := range p.FixedSections {
		if strings.EqualFold(key, s) {
			return true
		}
	}
	return false
}

func (r LabelRule) matches(lowerName string) bool {
	for _, kw := range r.Contains {
		if !strings.Contains(lowerName, strings.ToLower(kw)) {
			return false
		}
	}
	for _, kw := range r.Excludes {
		if strings.Contains(lowerName, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
