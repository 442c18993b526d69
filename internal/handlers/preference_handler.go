package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resumepro/resume-analyzer/internal/models"
	"resumepro/resume-analyzer/internal/repositories"
)

// PreferenceHandler reads and writes persisted UI settings (e.g. the
// dark-mode theme).
type PreferenceHandler struct {
	prefRepo repositories.PreferenceRepository
}

func NewPreferenceHandler(prefRepo repositories.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{
		prefRepo: prefRepo,
	}
}

// HandleGet handles GET /preferences/:key
func (h *PreferenceHandler) HandleGet(c *fiber.Ctx) error {
	pref, err := h.prefRepo.Get(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Preference not found",
		})
	}

	return c.JSON(pref)
}

// HandleSet handles PUT /preferences/:key
func (h *PreferenceHandler) HandleSet(c *fiber.Ctx) error {
	var req models.PreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	key := c.Params("key")
	if err := h.prefRepo.Set(key, req.Value); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save preference",
		})
	}

	return c.JSON(models.Preference{Key: key, Value: req.Value})
}
