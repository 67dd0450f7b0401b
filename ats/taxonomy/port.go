package taxonomy

import (
	"context"

	"github.com/folioforge/ats/pkg/kernel"
)

// Provider produces a keyword taxonomy for a (profession, level) pair.
// Implementations must be deterministic per deployment: the same pair yields
// a set with stable category membership across calls. A provider that does
// not know the profession returns ErrNotFound; it never guesses silently.
type Provider interface {
	GetKeywords(ctx context.Context, profession kernel.Profession, level kernel.ExperienceLevel) (*Set, error)
}

// Cache stores taxonomies keyed by (profession, level) with a TTL.
// Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key Key) (*Set, error)
	Put(ctx context.Context, key Key, set *Set) error
}
