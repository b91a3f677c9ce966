package attempts

import (
	"time"

	"github.com/abhisek/prepiq/internal/mastery"
)

// Document is the full persisted performance record of one user.
type Document struct {
	UserID         string                 `json:"user_id"`
	Attempts       []mastery.TestAttempt  `json:"attempts"`
	TopicMasteries []mastery.TopicMastery `json:"topic_masteries"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// EmptyDocument returns the document of a user with no recorded history.
func EmptyDocument(userID string) *Document {
	return &Document{
		UserID:         userID,
		Attempts:       []mastery.TestAttempt{},
		TopicMasteries: []mastery.TopicMastery{},
	}
}

// normalize replaces nil slices so callers can range and serialize
// without special cases.
func (d *Document) normalize(userID string) {
	if d.UserID == "" {
		d.UserID = userID
	}
	if d.Attempts == nil {
		d.Attempts = []mastery.TestAttempt{}
	}
	if d.TopicMasteries == nil {
		d.TopicMasteries = []mastery.TopicMastery{}
	}
}
