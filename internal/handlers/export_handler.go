package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"resumepro/resume-analyzer/internal/services"
)

// ExportHandler serves the cold email and cover letter as plain text for
// clipboard and file download.
type ExportHandler struct {
	sessions services.SessionManager
}

func NewExportHandler(sessions services.SessionManager) *ExportHandler {
	return &ExportHandler{
		sessions: sessions,
	}
}

// HandleCoverLetterDownload handles GET /sessions/:id/cover-letter
func (h *ExportHandler) HandleCoverLetterDownload(c *fiber.Ctx) error {
	session, err := findSession(h.sessions, c)
	if err != nil {
		return err
	}

	analysis, _, ok := session.Results()
	if !ok {
		return fiber.NewError(fiber.StatusConflict, "No analysis available")
	}

	name := analysis.CandidateProfile.Name
	if name == "" {
		name = "Candidate"
	}

	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="Cover_Letter_%s.txt"`, name))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(analysis.CoverLetter)
}

// HandleColdEmail handles GET /sessions/:id/cold-email
func (h *ExportHandler) HandleColdEmail(c *fiber.Ctx) error {
	session, err := findSession(h.sessions, c)
	if err != nil {
		return err
	}

	analysis, _, ok := session.Results()
	if !ok {
		return fiber.NewError(fiber.StatusConflict, "No analysis available")
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(fmt.Sprintf("Subject: %s\n\n%s",
		analysis.ColdEmail.Subject, analysis.ColdEmail.Body))
}
