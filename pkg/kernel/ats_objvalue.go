package kernel

import "strings"

// Profession is the free-form target profession a taxonomy is built for
type Profession string

// Normalized returns the canonical lookup form: trimmed and lowercased
func (p Profession) Normalized() Profession {
	return Profession(strings.ToLower(strings.TrimSpace(string(p))))
}

func (p Profession) String() string { return string(p) }

func (p Profession) IsEmpty() bool {
	return strings.TrimSpace(string(p)) == ""
}

// ExperienceLevel is the seniority bracket a taxonomy targets
type ExperienceLevel string

const (
	ExperienceLevelEntry  ExperienceLevel = "entry"
	ExperienceLevelMid    ExperienceLevel = "mid"
	ExperienceLevelSenior ExperienceLevel = "senior"
)

func (l ExperienceLevel) String() string { return string(l) }

// IsValid reports whether the level is one of entry, mid, senior
func (l ExperienceLevel) IsValid() bool {
	switch l {
	case ExperienceLevelEntry, ExperienceLevelMid, ExperienceLevelSenior:
		return true
	}
	return false
}

// ParseExperienceLevel parses a wire value into an ExperienceLevel
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	level := ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
	return level, level.IsValid()
}
