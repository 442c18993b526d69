package services

import (
	"net/url"
	"strings"

	"resumepro/resume-analyzer/internal/models"
)

const maxJobListings = 20

// BuildJobList reshapes grounding citations into job listings. A citation
// needs both a title and a link; only the first occurrence of each link is
// kept, in encounter order, capped at maxJobListings.
func BuildJobList(citations []Citation) []models.Job {
	var jobs []models.Job
	seen := make(map[string]bool)

	for _, c := range citations {
		if c.URI == "" || c.Title == "" || seen[c.URI] {
			continue
		}
		seen[c.URI] = true

		jobs = append(jobs, models.Job{
			Title:   c.Title,
			Link:    c.URI,
			Company: deriveCompany(c.Title, c.URI),
			Source:  normalizeSource(c.URI),
		})

		if len(jobs) == maxJobListings {
			break
		}
	}

	return jobs
}

// SplitJobs partitions listings into the premium (LinkedIn/Naukri) set and
// everything else. The partitions are disjoint and exhaustive.
func SplitJobs(jobs []models.Job) (premium, other []models.Job) {
	for _, job := range jobs {
		if job.Premium() {
			premium = append(premium, job)
		} else {
			other = append(other, job)
		}
	}
	return premium, other
}

// deriveCompany splits the citation title on "-" or "|" and takes the trimmed
// last segment; with no separator it falls back to the link's hostname minus
// a leading "www.".
func deriveCompany(title, link string) string {
	company := "Unknown Company"

	segments := strings.Split(strings.ReplaceAll(title, "|", "-"), "-")
	if len(segments) > 1 {
		return strings.TrimSpace(segments[len(segments)-1])
	}

	if u, err := url.Parse(link); err == nil && u.Hostname() != "" {
		company = strings.TrimPrefix(u.Hostname(), "www.")
	}
	return company
}

// normalizeSource strips the leading "www.", "in." and "uk." labels from the
// link's hostname, once each, in that order.
func normalizeSource(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	host = strings.TrimPrefix(host, "in.")
	host = strings.TrimPrefix(host, "uk.")
	return host
}
