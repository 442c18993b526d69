package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one feedback row in the "ratings" table. Stars 1-5 means an
// explicit rating, 0 means the user skipped the prompt.
type Rating struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id,omitempty"`
	CandidateName  string    `gorm:"type:text" json:"candidate_name"`
	CandidateEmail string    `gorm:"type:text" json:"candidate_email"`
	Stars          int       `gorm:"not null" json:"stars"`
	ResumeScore    float64   `gorm:"type:decimal(5,2)" json:"resume_score"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"created_at,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}
