package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ContentPart is one piece of multi-part request content: either literal text
// or inline binary (Data + MIMEType set).
type ContentPart struct {
	Text     string
	Data     []byte
	MIMEType string
}

// Citation is a grounding citation attributed by the discovery endpoint.
type Citation struct {
	URI   string
	Title string
}

// CompletionProvider returns structured JSON text for a multi-part prompt.
type CompletionProvider interface {
	GenerateJSON(ctx context.Context, parts []ContentPart) (string, error)
}

// DiscoveryProvider answers a query with web-grounded search citations.
type DiscoveryProvider interface {
	SearchListings(ctx context.Context, query string) ([]Citation, error)
}

type GeminiService interface {
	CompletionProvider
	DiscoveryProvider
}

type geminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(apiKey string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: "gemini-2.5-flash",
	}, nil
}

// GenerateJSON implements CompletionProvider. Temperature is pinned to zero
// for deterministic scoring and the response is requested as JSON.
func (g *geminiService) GenerateJSON(ctx context.Context, parts []ContentPart) (string, error) {
	genParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			genParts = append(genParts, &genai.Part{
				InlineData: &genai.Blob{MIMEType: p.MIMEType, Data: p.Data},
			})
			continue
		}
		genParts = append(genParts, &genai.Part{Text: p.Text})
	}

	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  8192,
	}

	contents := []*genai.Content{{Role: "user", Parts: genParts}}
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// SearchListings implements DiscoveryProvider using google-search grounding.
// Only the grounding chunks matter; the answer text itself is discarded.
func (g *geminiService) SearchListings(ctx context.Context, query string) ([]Citation, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(query), config)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	// Missing candidates or grounding metadata means the search found
	// nothing: zero listings, not a failure.
	return citationsFromResponse(resp), nil
}

func citationsFromResponse(resp *genai.GenerateContentResponse) []Citation {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}

	var citations []Citation
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		citations = append(citations, Citation{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}

	return citations
}
