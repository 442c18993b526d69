package services

import (
	"fmt"
	"strings"
)

const (
	fallbackRole        = "Not specified, infer from resume skills"
	fallbackDescription = "Not specified, analyze based on general best practices for the role."
	fallbackSearchRole  = "Software Engineer"

	fileInstruction = "Analyze this resume document."
)

// analysisInstructions is the fixed instruction block sent with every
// completion request: nine deliverables plus the target JSON schema.
const analysisInstructions = `You are an advanced ATS (Applicant Tracking System). Analyze the resume against the target job description and role.

CRITICAL INSTRUCTIONS:
1. **SCORE**: Provide a GENUINE score (0-100) based strictly on the match between resume skills/experience and the job description/role. Do not inflate the score. If it's a mismatch, give a low score.
2. **EXPERIENCE CALCULATION**: CAREFULLY calculate the total years of experience by summing the duration of all listed roles in the Work Experience section. Count from the start date of the first relevant role to the current date. Do NOT just look for a number in the summary. If they have a role from 2021 to Present, that is 2+ years. Be accurate.
3. **EXECUTIVE SUMMARY**: Write a professional executive summary (3-4 sentences) that specifically mentions the calculated years of experience (e.g. "Professional with 2+ years of experience in..."). It must be factually correct based on the work history.
4. **PROJECTS**: Suggest 3 specific, impressive projects the candidate could build to improve their profile for this specific role.
5. **ROADMAP**: Create a "Personalized Study Roadmap" with 3 steps (Basics, Intermediate, Advanced) to bridge the skill gap.
6. **COLD EMAIL**: Generate a professional cold email subject and body to send to a recruiter for this role.
7. **COVER LETTER**: Write a highly professional, tailored cover letter (250-350 words) for this specific role and company (if known). Use a standard business letter format.
8. **INTERVIEW**: Provide 5 likely interview questions, 3 weak areas to prep for, and a mock interview focus.
9. **CANDIDATE INFO**: Extract Name and Email.

Return JSON matching this schema:
{
  "score": number,
  "summary": "string",
  "strengths": ["string"],
  "suggestedProjects": ["string"],
  "missingKeywords": ["string"],
  "matchLevel": "Low" | "Medium" | "High",
  "jobTitles": ["string"],
  "topSkills": ["string"],
  "experienceLevel": "string",
  "coldEmail": { "subject": "string", "body": "string" },
  "coverLetter": "string",
  "roadmap": [{ "title": "string", "description": "string" }],
  "interviewPrep": {
     "questions": ["string"],
     "weakAreas": ["string"],
     "mockFocus": "string"
  },
  "candidateProfile": { "name": "string", "email": "string" }
}`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildJobContext embeds the target role and description, substituting the
// explicit fallback phrases when either is absent.
func (pb *PromptBuilder) BuildJobContext(role, description string) string {
	if role == "" {
		role = fallbackRole
	}
	if description == "" {
		description = fallbackDescription
	}
	return fmt.Sprintf("Target Role: %s\nTarget Job Description:\n%s", role, description)
}

func (pb *PromptBuilder) BuildAnalysisInstructions() string {
	return analysisInstructions
}

// SearchRole picks the role used for job discovery: the explicit target role,
// else the first model-suggested title, else a generic fallback.
func (pb *PromptBuilder) SearchRole(explicit string, jobTitles []string) string {
	if explicit != "" {
		return explicit
	}
	if len(jobTitles) > 0 && jobTitles[0] != "" {
		return jobTitles[0]
	}
	return fallbackSearchRole
}

// BuildSearchQuery scopes the discovery request to the three job boards and
// intersects the role with the top two suggested skills.
func (pb *PromptBuilder) BuildSearchQuery(role string, skills []string) string {
	top := skills
	if len(top) > 2 {
		top = top[:2]
	}
	query := fmt.Sprintf(`(site:linkedin.com/jobs OR site:naukri.com OR site:indeed.com) "%s" %s`,
		role, strings.Join(top, " "))
	return fmt.Sprintf("Find 20 active job listings for: %s", strings.TrimSpace(query))
}
