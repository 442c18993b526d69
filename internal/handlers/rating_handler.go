package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resumepro/resume-analyzer/internal/models"
	"resumepro/resume-analyzer/internal/services"
)

type RatingHandler struct {
	sessions services.SessionManager
}

func NewRatingHandler(sessions services.SessionManager) *RatingHandler {
	return &RatingHandler{
		sessions: sessions,
	}
}

// HandleSubmit handles POST /sessions/:id/rating
func (h *RatingHandler) HandleSubmit(c *fiber.Ctx) error {
	session, err := findSession(h.sessions, c)
	if err != nil {
		return err
	}

	var req models.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := session.SubmitRating(req.Stars); err != nil {
		switch {
		case errors.Is(err, services.ErrNoStarsSelected):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please select a star rating.",
			})
		case errors.Is(err, services.ErrInvalidStars):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "submitted",
	})
}

// HandleSkip handles POST /sessions/:id/rating/skip. The prompt is always
// dismissed; the skip marker write happens in the background.
func (h *RatingHandler) HandleSkip(c *fiber.Ctx) error {
	session, err := findSession(h.sessions, c)
	if err != nil {
		return err
	}

	if err := session.SkipRating(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "skipped",
	})
}
