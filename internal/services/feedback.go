package services

import (
	"context"
	"fmt"
	"log"

	supabase "github.com/nedpals/supabase-go"

	"resumepro/resume-analyzer/internal/models"
	"resumepro/resume-analyzer/internal/repositories"
)

// FeedbackStore persists star ratings. Writes are best-effort: callers log
// failures and move on.
type FeedbackStore interface {
	SaveRating(ctx context.Context, rating *models.Rating) error
}

// ratingRow is the wire shape for the hosted "ratings" table.
type ratingRow struct {
	CandidateName  string  `json:"candidate_name"`
	CandidateEmail string  `json:"candidate_email"`
	Stars          int     `json:"stars"`
	ResumeScore    float64 `json:"resume_score"`
}

type supabaseFeedbackStore struct {
	client *supabase.Client
}

func NewSupabaseFeedbackStore(supabaseURL, supabaseKey string) (FeedbackStore, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must both be set")
	}

	client := supabase.CreateClient(supabaseURL, supabaseKey)
	return &supabaseFeedbackStore{client: client}, nil
}

// SaveRating implements FeedbackStore.
func (s *supabaseFeedbackStore) SaveRating(ctx context.Context, rating *models.Rating) error {
	row := ratingRow{
		CandidateName:  rating.CandidateName,
		CandidateEmail: rating.CandidateEmail,
		Stars:          rating.Stars,
		ResumeScore:    rating.ResumeScore,
	}

	var results []ratingRow
	if err := s.client.DB.From("ratings").Insert(row).Execute(&results); err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}
	return nil
}

type postgresFeedbackStore struct {
	ratings repositories.RatingRepository
}

func NewPostgresFeedbackStore(ratings repositories.RatingRepository) FeedbackStore {
	return &postgresFeedbackStore{ratings: ratings}
}

// SaveRating implements FeedbackStore.
func (s *postgresFeedbackStore) SaveRating(ctx context.Context, rating *models.Rating) error {
	return s.ratings.Create(rating)
}

type disabledFeedbackStore struct{}

// NewDisabledFeedbackStore is used when no store credentials are configured;
// ratings are logged and dropped.
func NewDisabledFeedbackStore() FeedbackStore {
	return disabledFeedbackStore{}
}

// SaveRating implements FeedbackStore.
func (disabledFeedbackStore) SaveRating(ctx context.Context, rating *models.Rating) error {
	log.Printf("Rating store not configured. Rating: %d stars", rating.Stars)
	return nil
}
