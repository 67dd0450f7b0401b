package analysissrv

import (
	"strings"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/ats/taxonomy"
)

// MaxKeywordScore is the raw ceiling of the keyword sub-score
const MaxKeywordScore = 40.0

// DefaultMatchWindow bounds how far apart the tokens of a multi-word phrase
// may sit and still count as a match
const DefaultMatchWindow = 10

// categoryWeights distributes the 40 keyword points across categories
var categoryWeights = map[taxonomy.Category]float64{
	taxonomy.CategoryTechnicalSkills:       16,
	taxonomy.CategoryExperienceTerms:       10,
	taxonomy.CategorySoftSkills:            6,
	taxonomy.CategoryCertifications:        4,
	taxonomy.CategoryEducationRequirements: 4,
}

// categoriesByWeight orders categories from heaviest to lightest for tip
// generation
var categoriesByWeight = []taxonomy.Category{
	taxonomy.CategoryTechnicalSkills,
	taxonomy.CategoryExperienceTerms,
	taxonomy.CategorySoftSkills,
	taxonomy.CategoryCertifications,
	taxonomy.CategoryEducationRequirements,
}

// KeywordMatcher classifies every taxonomy phrase as matched or missing
// against an extracted document. Matching is two-tier: exact substring first,
// then a windowed all-tokens match that tolerates reordering ("python
// developer" vs "developer in python"). Both tiers count identically; there
// is no partial credit.
type KeywordMatcher struct {
	window int
}

func NewKeywordMatcher(window int) *KeywordMatcher {
	if window <= 0 {
		window = DefaultMatchWindow
	}
	return &KeywordMatcher{window: window}
}

// Match partitions every category of the set into matched and missing
// phrases, in canonical category order. matched ∪ missing always equals the
// category; the two never overlap.
func (m *KeywordMatcher) Match(doc *analysis.ExtractedDocument, set *taxonomy.Set) []analysis.KeywordMatch {
	index := newTokenIndex(doc.Text)

	matches := make([]analysis.KeywordMatch, 0, len(taxonomy.Categories))
	for _, c := range taxonomy.Categories {
		phrases := set.Phrases(c)
		match := analysis.KeywordMatch{
			Category: c,
			Matched:  []string{},
			Missing:  []string{},
		}
		for _, phrase := range phrases {
			if m.phraseMatches(doc.Text, index, phrase) {
				match.Matched = append(match.Matched, phrase)
			} else {
				match.Missing = append(match.Missing, phrase)
			}
		}
		matches = append(matches, match)
	}
	return matches
}

// Score computes the raw keyword sub-score in [0,40]. Each non-empty
// category contributes weight × matched/total; empty categories contribute 0
// and never divide by zero.
func (m *KeywordMatcher) Score(matches []analysis.KeywordMatch) float64 {
	score := 0.0
	for _, match := range matches {
		total := len(match.Matched) + len(match.Missing)
		if total == 0 {
			continue
		}
		score += categoryWeights[match.Category] * float64(len(match.Matched)) / float64(total)
	}
	if score > MaxKeywordScore {
		score = MaxKeywordScore
	}
	return score
}

func (m *KeywordMatcher) phraseMatches(text string, index *tokenIndex, phrase string) bool {
	// Tier 1: cheap, high-precision substring match
	if strings.Contains(text, phrase) {
		return true
	}

	// Tier 2: every token of a multi-word phrase within the window
	tokens := strings.Fields(phrase)
	if len(tokens) < 2 {
		return false
	}
	return index.allWithinWindow(tokens, m.window)
}

// tokenIndex maps each normalized token of the document to its positions
type tokenIndex struct {
	positions map[string][]int
}

func newTokenIndex(text string) *tokenIndex {
	idx := &tokenIndex{positions: make(map[string][]int)}
	for i, tok := range strings.Fields(text) {
		tok = trimTokenEdges(tok)
		if tok == "" {
			continue
		}
		idx.positions[tok] = append(idx.positions[tok], i)
	}
	return idx
}

// allWithinWindow reports whether some position of the first token has every
// other token within `window` positions of it
func (idx *tokenIndex) allWithinWindow(tokens []string, window int) bool {
	anchor := trimTokenEdges(tokens[0])
	anchorPositions, ok := idx.positions[anchor]
	if !ok {
		return false
	}

	for _, p := range anchorPositions {
		all := true
		for _, tok := range tokens[1:] {
			if !idx.hasWithin(trimTokenEdges(tok), p, window) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func (idx *tokenIndex) hasWithin(token string, center, window int) bool {
	for _, p := range idx.positions[token] {
		if p >= center-window && p <= center+window {
			return true
		}
	}
	return false
}

// trimTokenEdges strips punctuation from token boundaries so "python," and
// "python" compare equal
func trimTokenEdges(tok string) string {
	return strings.Trim(tok, ".,;:!?()[]{}\"'`")
}
