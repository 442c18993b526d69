package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"resumepro/resume-analyzer/internal/models"
	"resumepro/resume-analyzer/internal/services"
)

type fakeAnalyzer struct {
	result *models.AnalysisResult
	jobs   []models.Job
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ *models.AnalyzeRequest, progress services.ProgressFunc) (*models.AnalysisResult, []models.Job, error) {
	if progress != nil {
		progress("Searching for relevant opportunities...")
	}
	return f.result, f.jobs, f.err
}

type nullFeedbackStore struct{}

func (nullFeedbackStore) SaveRating(context.Context, *models.Rating) error { return nil }

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
				"code":  code,
			})
		},
	})
}

func newAnalyzeTestApp(analyzer services.AnalyzerService, hasAPIKey bool) (*fiber.App, services.SessionManager) {
	sessions := services.NewSessionManager(nullFeedbackStore{}, time.Hour, time.Hour)
	handler := NewAnalyzeHandler(sessions, analyzer, rate.NewLimiter(rate.Inf, 1), hasAPIKey)

	app := newTestApp()
	app.Post("/api/v1/sessions/:id/analyze", handler.HandleAnalyze)
	return app, sessions
}

func sessionInInputView(t *testing.T, sessions services.SessionManager) *services.Session {
	t.Helper()
	session := sessions.Create()
	if err := session.Navigate(services.ViewInput); err != nil {
		t.Fatalf("Navigate(input): %v", err)
	}
	return session
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &models.AnalysisResult{Score: 78, MatchLevel: models.MatchHigh},
		jobs: []models.Job{
			{Title: "A", Link: "https://linkedin.com/jobs/1", Source: "linkedin.com"},
			{Title: "B", Link: "https://example.com/2", Source: "example.com"},
		},
	}
	app, sessions := newAnalyzeTestApp(analyzer, true)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{ResumeText: "5 years React developer"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Analysis == nil || body.Analysis.Score != 78 {
		t.Errorf("unexpected analysis: %+v", body.Analysis)
	}
	if len(body.PremiumJobs) != 1 || len(body.OtherJobs) != 1 {
		t.Errorf("unexpected partition: premium=%d other=%d",
			len(body.PremiumJobs), len(body.OtherJobs))
	}

	if got := session.State().View; got != services.ViewResults {
		t.Errorf("session view after success = %s, want results", got)
	}
}

func TestHandleAnalyzeEmptyInput(t *testing.T) {
	app, sessions := newAnalyzeTestApp(&fakeAnalyzer{}, true)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{ResumeText: "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != msgNoResume {
		t.Errorf("unexpected error message %q", got)
	}
	if got := session.State().View; got != services.ViewInput {
		t.Errorf("session left input view on rejected request: %s", got)
	}
}

func TestHandleAnalyzeMissingAPIKey(t *testing.T) {
	app, sessions := newAnalyzeTestApp(nil, false)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{ResumeText: "resume"})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != msgMissingAPIKey {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestHandleAnalyzeCompletionFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{
		err: fmt.Errorf("%w: quota exceeded", services.ErrCompletionFailed),
	}
	app, sessions := newAnalyzeTestApp(analyzer, true)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{ResumeText: "resume"})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != msgAnalysisFailed {
		t.Errorf("unexpected error message %q", got)
	}
	if got := session.State().View; got != services.ViewInput {
		t.Errorf("session not back in input after failure: %s", got)
	}
}

func TestHandleAnalyzeDiscoveryFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{
		err: fmt.Errorf("%w: search backend down", services.ErrDiscoveryFailed),
	}
	app, sessions := newAnalyzeTestApp(analyzer, true)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{ResumeText: "resume"})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != msgDiscoveryFailed {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestHandleAnalyzeUnsupportedFile(t *testing.T) {
	analyzer := &fakeAnalyzer{
		err: fmt.Errorf("%w: text/plain", services.ErrUnsupportedFile),
	}
	app, sessions := newAnalyzeTestApp(analyzer, true)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{
			ResumeFile: &models.ResumeFile{Data: "aGVsbG8=", MimeType: "text/plain"},
		})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != msgUnsupportedFile {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestHandleAnalyzeInvalidFilePayload(t *testing.T) {
	analyzer := &fakeAnalyzer{
		err: fmt.Errorf("%w: illegal base64 data", services.ErrInvalidFilePayload),
	}
	app, sessions := newAnalyzeTestApp(analyzer, true)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{
			ResumeFile: &models.ResumeFile{Data: "!!!", MimeType: "application/pdf"},
		})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != msgInvalidPayload {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestHandleAnalyzeWrongView(t *testing.T) {
	app, sessions := newAnalyzeTestApp(&fakeAnalyzer{result: &models.AnalysisResult{}}, true)
	session := sessions.Create() // still on landing

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{ResumeText: "resume"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestHandleAnalyzeUnknownSession(t *testing.T) {
	app, _ := newAnalyzeTestApp(&fakeAnalyzer{}, true)

	resp := postJSON(t, app, "/api/v1/sessions/0c9d2a36-93a0-4db0-b658-4ce7ad69f0bd/analyze",
		models.AnalyzeRequest{ResumeText: "resume"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleAnalyzeBadSessionID(t *testing.T) {
	app, _ := newAnalyzeTestApp(&fakeAnalyzer{}, true)

	resp := postJSON(t, app, "/api/v1/sessions/not-a-uuid/analyze",
		models.AnalyzeRequest{ResumeText: "resume"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleAnalyzeRateLimited(t *testing.T) {
	sessions := services.NewSessionManager(nullFeedbackStore{}, time.Hour, time.Hour)
	handler := NewAnalyzeHandler(sessions,
		&fakeAnalyzer{err: errors.New("must not be reached")},
		rate.NewLimiter(0, 0), true)

	app := newTestApp()
	app.Post("/api/v1/sessions/:id/analyze", handler.HandleAnalyze)
	session := sessionInInputView(t, sessions)

	resp := postJSON(t, app, "/api/v1/sessions/"+session.ID.String()+"/analyze",
		models.AnalyzeRequest{ResumeText: "resume"})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != msgRateLimited {
		t.Errorf("unexpected error message %q", got)
	}
}
