package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_NormalizedCanonicalizesPhrases(t *testing.T) {
	set := &Set{
		TechnicalSkills: []string{"  Python ", "DOCKER", "python", "machine   learning"},
	}

	normalized := set.Normalized()

	assert.Equal(t, []string{"python", "docker", "machine learning"}, normalized.TechnicalSkills)
}

func TestSet_NormalizedDropsEmptyPhrases(t *testing.T) {
	set := &Set{SoftSkills: []string{"", "   ", "teamwork"}}

	normalized := set.Normalized()

	assert.Equal(t, []string{"teamwork"}, normalized.SoftSkills)
}

func TestSet_NormalizedResolvesCrossCategoryDuplicates(t *testing.T) {
	set := &Set{
		TechnicalSkills: []string{"agile"},
		ExperienceTerms: []string{"Agile", "scrum"},
	}

	normalized := set.Normalized()

	assert.Equal(t, []string{"agile"}, normalized.TechnicalSkills)
	assert.Equal(t, []string{"scrum"}, normalized.ExperienceTerms)
}

func TestSet_ValidateRejectsEmptySet(t *testing.T) {
	assert.Error(t, (&Set{}).Validate())
}

func TestSet_ValidateRejectsCrossCategoryDuplicate(t *testing.T) {
	set := &Set{
		TechnicalSkills: []string{"agile"},
		ExperienceTerms: []string{"agile"},
	}

	assert.Error(t, set.Validate())
}

func TestSet_ValidateAcceptsNormalizedSet(t *testing.T) {
	set := &Set{
		TechnicalSkills: []string{"python"},
		SoftSkills:      []string{"communication"},
	}

	require.NoError(t, set.Validate())
	assert.Equal(t, 2, set.TotalPhrases())
}

func TestSet_PhrasesCoversEveryCategory(t *testing.T) {
	set := &Set{
		TechnicalSkills:       []string{"a"},
		SoftSkills:            []string{"b"},
		Certifications:        []string{"c"},
		ExperienceTerms:       []string{"d"},
		EducationRequirements: []string{"e"},
	}

	seen := make(map[string]struct{})
	for _, c := range Categories {
		phrases := set.Phrases(c)
		require.Len(t, phrases, 1)
		seen[phrases[0]] = struct{}{}
	}
	assert.Len(t, seen, 5)
}

func TestNormalizePhrase(t *testing.T) {
	assert.Equal(t, "ci cd pipelines", NormalizePhrase("  CI   CD  Pipelines "))
	assert.Equal(t, "", NormalizePhrase("   "))
}
