package models

// ResumeFile is an uploaded resume as a text-safe payload. Data is base64,
// optionally still carrying the data-URI header the browser produces.
type ResumeFile struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
	Name     string `json:"name"`
}

// AnalyzeRequest carries one submission. At least one of ResumeText or
// ResumeFile must be present; when both are set the file wins and the text is
// discarded during normalization.
type AnalyzeRequest struct {
	ResumeText     string      `json:"resumeText"`
	ResumeFile     *ResumeFile `json:"resumeFile,omitempty"`
	JobRole        string      `json:"jobRole"`
	JobDescription string      `json:"jobDescription"`
}

type AnalyzeResponse struct {
	Analysis    *AnalysisResult `json:"analysis"`
	PremiumJobs []Job           `json:"premium_jobs"`
	OtherJobs   []Job           `json:"other_jobs"`
}

type RatingRequest struct {
	Stars int `json:"stars"`
}

type ViewRequest struct {
	View string `json:"view"`
}

type PreferenceRequest struct {
	Value string `json:"value"`
}

type UploadResponse struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Text     string `json:"text,omitempty"`
	StoredAs string `json:"stored_as"`
}

// SessionResponse is the wire form of a session's current view state. The
// analysis and job partitions are present only in the results view.
type SessionResponse struct {
	ID               string          `json:"id"`
	View             string          `json:"view"`
	AnalyzingMessage string          `json:"analyzing_message,omitempty"`
	Analysis         *AnalysisResult `json:"analysis,omitempty"`
	PremiumJobs      []Job           `json:"premium_jobs,omitempty"`
	OtherJobs        []Job           `json:"other_jobs,omitempty"`
	FeedbackOpen     bool            `json:"feedback_open"`
	FeedbackDone     bool            `json:"feedback_done"`
}
