package models

import "strings"

// Job is one discovered job listing, reshaped from a grounding citation.
// Link is the unique key; Source is the normalized hostname used for display
// and partitioning.
type Job struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Link    string `json:"link"`
	Source  string `json:"source"`
}

// Premium reports whether the listing belongs to the LinkedIn/Naukri
// partition shown with priority styling.
func (j Job) Premium() bool {
	source := strings.ToLower(j.Source)
	return strings.Contains(source, "linkedin") || strings.Contains(source, "naukri")
}
