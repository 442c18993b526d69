package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"resumepro/resume-analyzer/internal/models"
)

var (
	// ErrNoResume means neither resume text nor a file was supplied.
	ErrNoResume = errors.New("no resume provided")
	// ErrUnsupportedFile means the uploaded file is not a PDF or image.
	ErrUnsupportedFile = errors.New("unsupported resume file type")
	// ErrInvalidFilePayload means the file type was acceptable but its
	// payload could not be decoded.
	ErrInvalidFilePayload = errors.New("invalid resume file payload")
	// ErrCompletionFailed covers request, auth and parse failures of the
	// completion call.
	ErrCompletionFailed = errors.New("resume analysis failed")
	// ErrDiscoveryFailed covers failures of the grounded job search. Reported
	// separately from completion failures, but recovery is the same: the whole
	// flow aborts and no partial result is kept.
	ErrDiscoveryFailed = errors.New("job discovery failed")
)

// ProgressFunc receives human-readable pipeline stage messages.
type ProgressFunc func(message string)

type AnalyzerService interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest, progress ProgressFunc) (*models.AnalysisResult, []models.Job, error)
}

type analyzerService struct {
	completion CompletionProvider
	discovery  DiscoveryProvider
	prompts    *PromptBuilder
}

func NewAnalyzerService(completion CompletionProvider, discovery DiscoveryProvider) AnalyzerService {
	return &analyzerService{
		completion: completion,
		discovery:  discovery,
		prompts:    NewPromptBuilder(),
	}
}

// Analyze runs the full pipeline: input assembly, completion request,
// discovery request. The two AI calls are strictly sequential; discovery
// depends on the completion's extracted titles and skills.
func (a *analyzerService) Analyze(ctx context.Context, req *models.AnalyzeRequest, progress ProgressFunc) (*models.AnalysisResult, []models.Job, error) {
	if progress == nil {
		progress = func(string) {}
	}

	parts, err := a.assembleParts(req)
	if err != nil {
		return nil, nil, err
	}

	progress("Scanning document structure...")

	raw, err := a.completion.GenerateJSON(ctx, parts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		log.Printf("❌ Failed to parse analysis response: %v", err)
		return nil, nil, fmt.Errorf("%w: invalid response: %v", ErrCompletionFailed, err)
	}

	progress("Searching for relevant opportunities...")

	role := a.prompts.SearchRole(req.JobRole, result.JobTitles)
	query := a.prompts.BuildSearchQuery(role, result.TopSkills)

	citations, err := a.discovery.SearchListings(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDiscoveryFailed, err)
	}

	return &result, BuildJobList(citations), nil
}

// assembleParts normalizes the submission into completion request content.
// A file clears any pasted text; the file payload tolerates a data-URI header.
func (a *analyzerService) assembleParts(req *models.AnalyzeRequest) ([]ContentPart, error) {
	var parts []ContentPart

	if req.ResumeFile != nil {
		file := req.ResumeFile
		if !IsSupportedResumeMime(file.MimeType) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, file.MimeType)
		}

		payload := file.Data
		if strings.HasPrefix(payload, "data:") {
			if i := strings.IndexByte(payload, ','); i >= 0 {
				payload = payload[i+1:]
			}
		}

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilePayload, err)
		}

		parts = append(parts,
			ContentPart{Data: data, MIMEType: file.MimeType},
			ContentPart{Text: fileInstruction},
		)
	} else {
		if strings.TrimSpace(req.ResumeText) == "" {
			return nil, ErrNoResume
		}
		parts = append(parts, ContentPart{Text: "Resume Content:\n" + req.ResumeText})
	}

	parts = append(parts,
		ContentPart{Text: a.prompts.BuildJobContext(req.JobRole, req.JobDescription)},
		ContentPart{Text: a.prompts.BuildAnalysisInstructions()},
	)

	return parts, nil
}

// IsSupportedResumeMime accepts exactly PDF and image uploads.
func IsSupportedResumeMime(mimeType string) bool {
	return mimeType == "application/pdf" || strings.HasPrefix(mimeType, "image/")
}

// extractJSON strips markdown code fences and surrounding prose the model may
// wrap around its JSON payload.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
