package taxonomy

import (
	"fmt"
	"strings"

	"github.com/folioforge/ats/pkg/kernel"
)

// Category names one of the five keyword groups of a ProfessionKeywordSet
type Category string

const (
	CategoryTechnicalSkills       Category = "technical_skills"
	CategorySoftSkills            Category = "soft_skills"
	CategoryCertifications        Category = "certifications"
	CategoryExperienceTerms       Category = "experience_terms"
	CategoryEducationRequirements Category = "education_requirements"
)

// Categories is the canonical iteration order. All per-category output
// (matches, scores, reports) follows this order so results stay deterministic.
var Categories = []Category{
	CategoryTechnicalSkills,
	CategorySoftSkills,
	CategoryCertifications,
	CategoryExperienceTerms,
	CategoryEducationRequirements,
}

// Set is the categorized keyword taxonomy for one (profession, level) pair.
// Phrases are case-normalized and unique across the whole set. A Set is
// immutable once returned by a provider; it is never array-wrapped on the wire.
type Set struct {
	TechnicalSkills       []string `json:"technical_skills"`
	SoftSkills            []string `json:"soft_skills"`
	Certifications        []string `json:"certifications"`
	ExperienceTerms       []string `json:"experience_terms"`
	EducationRequirements []string `json:"education_requirements"`
}

// Key identifies the (profession, level) pair a Set was built for
type Key struct {
	Profession kernel.Profession      `json:"profession"`
	Level      kernel.ExperienceLevel `json:"experience_level"`
}

// Phrases returns the phrase list for a category
func (s *Set) Phrases(c Category) []string {
	switch c {
	case CategoryTechnicalSkills:
		return s.TechnicalSkills
	case CategorySoftSkills:
		return s.SoftSkills
	case CategoryCertifications:
		return s.Certifications
	case CategoryExperienceTerms:
		return s.ExperienceTerms
	case CategoryEducationRequirements:
		return s.EducationRequirements
	}
	return nil
}

func (s *Set) setPhrases(c Category, phrases []string) {
	switch c {
	case CategoryTechnicalSkills:
		s.TechnicalSkills = phrases
	case CategorySoftSkills:
		s.SoftSkills = phrases
	case CategoryCertifications:
		s.Certifications = phrases
	case CategoryExperienceTerms:
		s.ExperienceTerms = phrases
	case CategoryEducationRequirements:
		s.EducationRequirements = phrases
	}
}

// TotalPhrases counts phrases across all categories
func (s *Set) TotalPhrases() int {
	total := 0
	for _, c := range Categories {
		total += len(s.Phrases(c))
	}
	return total
}

// Normalized returns a copy with every phrase trimmed, lowercased and
// whitespace-collapsed, duplicates removed in order, and cross-category
// duplicates resolved in favor of the earlier category.
func (s *Set) Normalized() *Set {
	out := &Set{}
	seen := make(map[string]struct{})
	for _, c := range Categories {
		var phrases []string
		for _, p := range s.Phrases(c) {
			p = NormalizePhrase(p)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			phrases = append(phrases, p)
		}
		out.setPhrases(c, phrases)
	}
	return out
}

// Validate checks the Set invariants: at least one non-empty category and no
// phrase appearing in more than one category.
func (s *Set) Validate() error {
	if s.TotalPhrases() == 0 {
		return fmt.Errorf("keyword set has no phrases in any category")
	}
	seen := make(map[string]Category)
	for _, c := range Categories {
		for _, p := range s.Phrases(c) {
			if prev, dup := seen[p]; dup {
				return fmt.Errorf("phrase %q appears in both %s and %s", p, prev, c)
			}
			seen[p] = c
		}
	}
	return nil
}

// NormalizePhrase canonicalizes a single keyword phrase
func NormalizePhrase(p string) string {
	return strings.Join(strings.Fields(strings.ToLower(p)), " ")
}
