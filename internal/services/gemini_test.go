package services

import (
	"testing"

	"google.golang.org/genai"
)

func TestCitationsFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{
						URI:   "https://www.linkedin.com/jobs/view/1",
						Title: "Frontend Engineer - Acme",
					}},
					{Web: nil},
					nil,
				},
			},
		}},
	}

	citations := citationsFromResponse(resp)
	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].URI != "https://www.linkedin.com/jobs/view/1" ||
		citations[0].Title != "Frontend Engineer - Acme" {
		t.Errorf("unexpected citation: %+v", citations[0])
	}
}

func TestCitationsFromResponseEmpty(t *testing.T) {
	// A response without candidates or grounding metadata is zero listings,
	// not an error; the results view still renders.
	cases := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
	}

	for i, resp := range cases {
		if got := citationsFromResponse(resp); got != nil {
			t.Errorf("case %d: expected no citations, got %v", i, got)
		}
	}
}
