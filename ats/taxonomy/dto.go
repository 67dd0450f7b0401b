package taxonomy

// GetKeywordsRequest - DTO for requesting a profession taxonomy
type GetKeywordsRequest struct {
	Profession      string `json:"profession" validate:"required"`
	ExperienceLevel string `json:"experience_level" validate:"required"`
}

// GetKeywordsResponse - DTO wrapping the taxonomy for the wire.
// The set is always a single flat object, never array-wrapped.
type GetKeywordsResponse struct {
	Keywords *Set `json:"keywords"`
}
