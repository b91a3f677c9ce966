package mastery

import (
	"time"

	"github.com/abhisek/prepiq/internal/question"
)

const (
	// StrongThreshold is the minimum score classified as strong.
	StrongThreshold = 85

	// WeakThreshold is the score below which a topic is weak.
	WeakThreshold = 70
)

// Strength classifies a topic by its mastery score.
type Strength string

const (
	StrengthWeak    Strength = "weak"
	StrengthAverage Strength = "average"
	StrengthStrong  Strength = "strong"
)

// Trend describes the direction of recent accuracy on a topic.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// TopicMastery is the derived aggregate for one (user, topic) pair.
type TopicMastery struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	Subject            question.Subject `json:"subject"`
	Topic              string           `json:"topic"`
	MasteryScore       int              `json:"mastery_score"`
	QuestionsAttempted int              `json:"questions_attempted"`
	QuestionsCorrect   int              `json:"questions_correct"`
	LastAttemptDate    time.Time        `json:"last_attempt_date"`
	Trend              Trend            `json:"trend"`
	Strength           Strength         `json:"strength"`
}

// StrengthFor maps a mastery score to its strength class.
func StrengthFor(score int) Strength {
	switch {
	case score >= StrongThreshold:
		return StrengthStrong
	case score < WeakThreshold:
		return StrengthWeak
	default:
		return StrengthAverage
	}
}

// TopicKey derives the stable mastery key for a subject/topic pair,
// e.g. ("physics", "Laws of Motion") -> "physics_laws-of-motion".
func TopicKey(subject question.Subject, topic string) string {
	return string(subject) + "_" + question.NormalizeTopic(topic)
}
