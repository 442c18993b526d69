package models

type MatchLevel string

const (
	MatchLow    MatchLevel = "Low"
	MatchMedium MatchLevel = "Medium"
	MatchHigh   MatchLevel = "High"
)

// AnalysisResult is the structured evaluation returned by the completion
// endpoint. Field names mirror the JSON schema the prompt asks the model to
// follow. Values are trusted verbatim; absent fields stay at their zero value.
type AnalysisResult struct {
	Score             float64          `json:"score"`
	Summary           string           `json:"summary"`
	Strengths         []string         `json:"strengths"`
	SuggestedProjects []string         `json:"suggestedProjects"`
	MissingKeywords   []string         `json:"missingKeywords"`
	MatchLevel        MatchLevel       `json:"matchLevel"`
	JobTitles         []string         `json:"jobTitles"`
	TopSkills         []string         `json:"topSkills"`
	ExperienceLevel   string           `json:"experienceLevel"`
	ColdEmail         ColdEmail        `json:"coldEmail"`
	CoverLetter       string           `json:"coverLetter"`
	Roadmap           []RoadmapStep    `json:"roadmap"`
	InterviewPrep     InterviewPrep    `json:"interviewPrep"`
	CandidateProfile  CandidateProfile `json:"candidateProfile"`
}

type ColdEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type RoadmapStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type InterviewPrep struct {
	Questions []string `json:"questions"`
	WeakAreas []string `json:"weakAreas"`
	MockFocus string   `json:"mockFocus"`
}

type CandidateProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
