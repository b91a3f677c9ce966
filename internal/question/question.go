package question

import (
	"context"
	"slices"
	"strings"
)

// Option is one answer choice of a question.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Question is a single practice question from the repository.
type Question struct {
	ID            string     `json:"id"`
	Text          string     `json:"question"`
	Options       []Option   `json:"options,omitempty"`
	CorrectAnswer string     `json:"correct_answer,omitempty"`
	Explanation   string     `json:"explanation,omitempty"`
	Subject       Subject    `json:"subject"`
	Topic         string     `json:"topic"`
	Difficulty    Difficulty `json:"difficulty"`
	GradeLevels   []string   `json:"grade_level,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Source        string     `json:"source,omitempty"`
}

// HasGrade reports whether the question is tagged for the given grade.
func (q *Question) HasGrade(grade string) bool {
	return slices.Contains(q.GradeLevels, grade)
}

// NormalizeTopic folds case and whitespace so "Laws of  Motion" and
// "laws of motion" name the same topic.
func NormalizeTopic(topic string) string {
	return strings.Join(strings.Fields(strings.ToLower(topic)), "-")
}

// Criteria filters questions. Zero-valued fields match everything.
type Criteria struct {
	Subject    Subject
	Topic      string // compared with NormalizeTopic
	Difficulty Difficulty
	Grade      string
	Limit      int // max results (0 = unlimited)
}

// Matches reports whether q satisfies every set field of c. Limit is ignored.
func (c Criteria) Matches(q *Question) bool {
	if c.Subject != "" && q.Subject != c.Subject {
		return false
	}
	if c.Topic != "" && NormalizeTopic(q.Topic) != NormalizeTopic(c.Topic) {
		return false
	}
	if c.Difficulty != "" && q.Difficulty != c.Difficulty {
		return false
	}
	if c.Grade != "" && !q.HasGrade(c.Grade) {
		return false
	}
	return true
}

// Repository provides read access to the question pool. All list methods
// return questions in a stable insertion order; limit 0 means unlimited.
type Repository interface {
	// ByID returns the question with the given ID, or nil if none exists.
	ByID(ctx context.Context, id string) (*Question, error)

	BySubject(ctx context.Context, subject Subject, limit int) ([]Question, error)
	ByTopic(ctx context.Context, topic string, limit int) ([]Question, error)
	ByDifficulty(ctx context.Context, difficulty Difficulty, limit int) ([]Question, error)
	ByGrade(ctx context.Context, grade string, limit int) ([]Question, error)
	Filtered(ctx context.Context, c Criteria) ([]Question, error)

	// Topics returns the distinct topics, optionally restricted to a subject
	// (empty subject = all subjects).
	Topics(ctx context.Context, subject Subject) ([]string, error)

	// Subjects returns the subjects that have at least one question, in
	// display order.
	Subjects(ctx context.Context) ([]Subject, error)
}
