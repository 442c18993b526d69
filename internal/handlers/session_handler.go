package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumepro/resume-analyzer/internal/models"
	"resumepro/resume-analyzer/internal/services"
)

type SessionHandler struct {
	sessions services.SessionManager
}

func NewSessionHandler(sessions services.SessionManager) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(session))
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	session, err := findSession(h.sessions, c)
	if err != nil {
		return err
	}

	return c.JSON(sessionResponse(session))
}

// HandleNavigate handles POST /sessions/:id/view
func (h *SessionHandler) HandleNavigate(c *fiber.Ctx) error {
	session, err := findSession(h.sessions, c)
	if err != nil {
		return err
	}

	var req models.ViewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := session.Navigate(services.ViewName(req.View)); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(sessionResponse(session))
}

// findSession resolves the :id route param to a live session. Errors are
// fiber errors formatted by the app's error handler.
func findSession(sessions services.SessionManager, c *fiber.Ctx) (*services.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}

	session, ok := sessions.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return session, nil
}

func sessionResponse(session *services.Session) models.SessionResponse {
	state := session.State()

	resp := models.SessionResponse{
		ID:               session.ID.String(),
		View:             string(state.View),
		AnalyzingMessage: state.AnalyzingMessage,
		Analysis:         state.Analysis,
		FeedbackOpen:     state.FeedbackOpen,
		FeedbackDone:     state.FeedbackDone,
	}
	if state.View == services.ViewResults {
		resp.PremiumJobs, resp.OtherJobs = services.SplitJobs(state.Jobs)
	}
	return resp
}
