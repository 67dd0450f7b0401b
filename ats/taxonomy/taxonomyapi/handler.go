package taxonomyapi

import (
	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/ats/taxonomy/taxonomysrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *taxonomysrv.TaxonomyService
}

func NewHandlers(service *taxonomysrv.TaxonomyService) *Handlers {
	return &Handlers{
		service: service,
	}
}

func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Post("/profession-keywords", h.GetProfessionKeywords)
}

// GetProfessionKeywords returns the keyword taxonomy for a profession/level pair
// POST /profession-keywords
func (h *Handlers) GetProfessionKeywords(c *fiber.Ctx) error {
	var req taxonomy.GetKeywordsRequest
	if err := c.BodyParser(&req); err != nil {
		return taxonomy.ErrInvalidRequest().
			WithDetail("reason", "malformed request body")
	}

	set, err := h.service.GetKeywords(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(taxonomy.GetKeywordsResponse{Keywords: set})
}
