package mastery

import (
	"time"

	"github.com/abhisek/prepiq/internal/question"
)

// TestAttempt is one answered (or skipped) question. Attempts are
// append-only: once recorded they are never modified.
type TestAttempt struct {
	ID              string           `json:"id"`
	TestID          string           `json:"test_id"`
	UserID          string           `json:"user_id"`
	QuestionID      string           `json:"question_id"`
	Subject         question.Subject `json:"subject"`
	Topic           string           `json:"topic"`
	SelectedAnswer  *string          `json:"selected_answer"` // nil when unanswered
	IsCorrect       bool             `json:"is_correct"`
	TimeSpent       int              `json:"time_spent"` // seconds
	MarkedForReview bool             `json:"marked_for_review"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Key returns the topic key the attempt contributes to.
func (a *TestAttempt) Key() string {
	return TopicKey(a.Subject, a.Topic)
}

// HasTopic reports whether the attempt carries an explicit subject and topic.
func (a *TestAttempt) HasTopic() bool {
	return a.Subject != "" && a.Topic != ""
}
