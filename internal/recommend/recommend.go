package recommend

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/question"
)

const (
	// MaxPracticeTopics is how many of the weakest topics get a practice entry.
	MaxPracticeTopics = 3

	// MaxRevisionTopics is how many strong topics a revision entry names.
	MaxRevisionTopics = 2

	// FocusThreshold is the subject average below which a focus entry is emitted.
	FocusThreshold = 60
)

// Type is the kind of study action being recommended.
type Type string

const (
	TypePractice Type = "practice"
	TypeFocus    Type = "focus"
	TypeRevision Type = "revision"
)

// Priority orders recommendations; it carries no other meaning.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of p, lowest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Recommendation is one study suggestion.
type Recommendation struct {
	ID          string           `json:"id"`
	Type        Type             `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Subject     question.Subject `json:"subject,omitempty"`
	Topic       string           `json:"topic,omitempty"`
	Priority    Priority         `json:"priority"`
	ActionURL   string           `json:"action_url,omitempty"`
}

// ForSubject derives the recommendations for one subject from the user's
// topic masteries. Masteries of other subjects are ignored.
func ForSubject(subject question.Subject, masteries []mastery.TopicMastery) []Recommendation {
	var topics, weak, strong []mastery.TopicMastery
	for _, tm := range masteries {
		if tm.Subject != subject {
			continue
		}
		topics = append(topics, tm)
		switch tm.Strength {
		case mastery.StrengthWeak:
			weak = append(weak, tm)
		case mastery.StrengthStrong:
			strong = append(strong, tm)
		case mastery.StrengthAverage:
		}
	}

	slices.SortStableFunc(weak, func(a, b mastery.TopicMastery) int {
		return a.MasteryScore - b.MasteryScore
	})
	slices.SortStableFunc(strong, func(a, b mastery.TopicMastery) int {
		return b.MasteryScore - a.MasteryScore
	})

	var recs []Recommendation
	for i, tm := range weak[:min(len(weak), MaxPracticeTopics)] {
		priority := PriorityMedium
		if i == 0 {
			priority = PriorityHigh
		}
		recs = append(recs, practice(subject, tm, priority))
	}

	if len(strong) > 0 {
		recs = append(recs, revision(subject, strong[:min(len(strong), MaxRevisionTopics)]))
	}

	if len(topics) > 0 {
		if avg := AverageScore(topics); avg < FocusThreshold {
			recs = append(recs, focus(subject, avg))
		}
	}
	return recs
}

// All returns every subject's recommendations, subjects in declared order,
// stably sorted by priority.
func All(masteries []mastery.TopicMastery) []Recommendation {
	var recs []Recommendation
	for _, subject := range question.AllSubjects() {
		recs = append(recs, ForSubject(subject, masteries)...)
	}
	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return recs
}

// AverageScore returns the rounded mean mastery score, or 0 for no topics.
func AverageScore(topics []mastery.TopicMastery) int {
	if len(topics) == 0 {
		return 0
	}
	sum := 0
	for _, tm := range topics {
		sum += tm.MasteryScore
	}
	return mastery.Accuracy(sum, 100*len(topics))
}

func practice(subject question.Subject, tm mastery.TopicMastery, priority Priority) Recommendation {
	return Recommendation{
		ID:          fmt.Sprintf("%s-%s-%s", TypePractice, subject, question.NormalizeTopic(tm.Topic)),
		Type:        TypePractice,
		Title:       "Practice " + tm.Topic,
		Description: fmt.Sprintf("Your mastery in %s is %d%%. Focus on practicing more questions in this topic.", tm.Topic, tm.MasteryScore),
		Subject:     subject,
		Topic:       tm.Topic,
		Priority:    priority,
		ActionURL:   actionURL(subject, tm.Topic),
	}
}

func revision(subject question.Subject, strong []mastery.TopicMastery) Recommendation {
	names := make([]string, len(strong))
	for i, tm := range strong {
		names[i] = tm.Topic
	}
	return Recommendation{
		ID:          fmt.Sprintf("%s-%s", TypeRevision, subject),
		Type:        TypeRevision,
		Title:       "Revise strong topics in " + question.SubjectDisplayName(subject),
		Description: fmt.Sprintf("You're doing great in %s. Keep revising to maintain your mastery.", strings.Join(names, " and ")),
		Subject:     subject,
		Priority:    PriorityLow,
	}
}

func focus(subject question.Subject, avg int) Recommendation {
	name := question.SubjectDisplayName(subject)
	return Recommendation{
		ID:          fmt.Sprintf("%s-%s", TypeFocus, subject),
		Type:        TypeFocus,
		Title:       "Focus on " + name,
		Description: fmt.Sprintf("Your overall %s score is %d%%. Spend more time on this subject to build a stronger foundation.", name, avg),
		Subject:     subject,
		Priority:    PriorityHigh,
		ActionURL:   actionURL(subject, ""),
	}
}

func actionURL(subject question.Subject, topic string) string {
	v := url.Values{}
	v.Set("subject", string(subject))
	if topic != "" {
		v.Set("topic", topic)
	}
	return "/practice?" + v.Encode()
}
