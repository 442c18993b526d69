package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"resumepro/resume-analyzer/internal/models"
	"resumepro/resume-analyzer/internal/services"
)

const (
	msgNoResume        = "Please upload a resume or paste text."
	msgMissingAPIKey   = "API Key is missing! Please configure GEMINI_API_KEY in your environment variables."
	msgUnsupportedFile = "Only PDF, PNG, or JPG files are allowed."
	msgInvalidPayload  = "The uploaded file could not be read. Please re-upload your resume."
	msgAnalysisFailed  = "Analysis failed. Please check your API Key or try again."
	msgDiscoveryFailed = "Job search failed. Please try again."
	msgRateLimited     = "Too many analysis requests. Please wait and try again."
)

type AnalyzeHandler struct {
	sessions  services.SessionManager
	analyzer  services.AnalyzerService
	limiter   *rate.Limiter
	hasAPIKey bool
}

func NewAnalyzeHandler(
	sessions services.SessionManager,
	analyzer services.AnalyzerService,
	limiter *rate.Limiter,
	hasAPIKey bool,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		sessions:  sessions,
		analyzer:  analyzer,
		limiter:   limiter,
		hasAPIKey: hasAPIKey,
	}
}

// HandleAnalyze handles POST /sessions/:id/analyze. It runs the whole
// pipeline synchronously: the session sits in the analyzing view for the
// duration and lands in results or back in input.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	session, err := findSession(h.sessions, c)
	if err != nil {
		return err
	}

	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	// Input presence and credential are checked before any network call.
	if req.ResumeFile == nil && strings.TrimSpace(req.ResumeText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgNoResume,
		})
	}

	if !h.hasAPIKey {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": msgMissingAPIKey,
		})
	}

	if !h.limiter.Allow() {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": msgRateLimited,
		})
	}

	if err := session.BeginAnalysis(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	analysis, jobs, err := h.analyzer.Analyze(c.UserContext(), &req, session.SetAnalyzingMessage)
	if err != nil {
		session.FailAnalysis()
		return h.analysisError(c, err)
	}

	if err := session.CompleteAnalysis(analysis, jobs); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	premium, other := services.SplitJobs(jobs)
	return c.JSON(models.AnalyzeResponse{
		Analysis:    analysis,
		PremiumJobs: premium,
		OtherJobs:   other,
	})
}

// analysisError maps pipeline failures to their user-facing messages.
// Completion and discovery failures are reported separately but share the
// same recovery: the session is already back in the input view.
func (h *AnalyzeHandler) analysisError(c *fiber.Ctx, err error) error {
	log.Printf("❌ Analysis pipeline failed: %v", err)

	switch {
	case errors.Is(err, services.ErrNoResume):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgNoResume,
		})
	case errors.Is(err, services.ErrUnsupportedFile):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgUnsupportedFile,
		})
	case errors.Is(err, services.ErrInvalidFilePayload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgInvalidPayload,
		})
	case errors.Is(err, services.ErrDiscoveryFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": msgDiscoveryFailed,
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": msgAnalysisFailed,
		})
	}
}
