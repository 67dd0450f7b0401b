package taxonomysrv

import (
	"context"
	"errors"

	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/errx"
	"github.com/folioforge/ats/pkg/kernel"
	"github.com/folioforge/ats/pkg/logx"
)

// TaxonomyService resolves keyword taxonomies through a provider chain:
// static table first, then an optional generative provider whose results are
// cached by (profession, level) so membership stays stable per deployment.
// The service holds no per-request state and is safe for concurrent use.
type TaxonomyService struct {
	static     taxonomy.Provider
	generative taxonomy.Provider // optional
	cache      taxonomy.Cache    // optional, used for generative results
}

// NewTaxonomyService creates the service. generative and cache may be nil.
func NewTaxonomyService(static taxonomy.Provider, generative taxonomy.Provider, cache taxonomy.Cache) *TaxonomyService {
	return &TaxonomyService{
		static:     static,
		generative: generative,
		cache:      cache,
	}
}

// GetKeywords validates the request and resolves the taxonomy. Unknown
// professions yield TAXONOMY.NOT_FOUND; this service never substitutes a
// generic taxonomy on its own.
func (s *TaxonomyService) GetKeywords(ctx context.Context, req taxonomy.GetKeywordsRequest) (*taxonomy.Set, error) {
	profession := kernel.Profession(req.Profession)
	if profession.IsEmpty() {
		return nil, taxonomy.ErrInvalidRequest().
			WithDetail("field", "profession").
			WithDetail("reason", "must be non-empty")
	}

	level, ok := kernel.ParseExperienceLevel(req.ExperienceLevel)
	if !ok {
		return nil, taxonomy.ErrInvalidRequest().
			WithDetail("field", "experience_level").
			WithDetail("allowed", []string{
				kernel.ExperienceLevelEntry.String(),
				kernel.ExperienceLevelMid.String(),
				kernel.ExperienceLevelSenior.String(),
			})
	}

	set, err := s.static.GetKeywords(ctx, profession, level)
	if err == nil {
		return set, nil
	}
	if !isNotFound(err) || s.generative == nil {
		return nil, err
	}

	// Static table miss: fall back to the generative provider, cache-first so
	// repeated lookups keep identical category membership.
	key := taxonomy.Key{Profession: profession.Normalized(), Level: level}
	if s.cache != nil {
		cached, cacheErr := s.cache.Get(ctx, key)
		if cacheErr != nil {
			logx.Warnf("Taxonomy cache read failed for %s/%s: %v", key.Profession, key.Level, cacheErr)
		} else if cached != nil {
			return cached, nil
		}
	}

	generated, err := s.generative.GetKeywords(ctx, profession, level)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.Put(ctx, key, generated); cacheErr != nil {
			logx.Warnf("Taxonomy cache write failed for %s/%s: %v", key.Profession, key.Level, cacheErr)
		}
	}

	return generated, nil
}

func isNotFound(err error) bool {
	var e *errx.Error
	if errors.As(err, &e) {
		return e.Code == taxonomy.CodeNotFound
	}
	return false
}
