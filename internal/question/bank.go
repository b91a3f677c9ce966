package question

import (
	"context"
	"fmt"
	"slices"
)

// Bank is an in-memory Repository with precomputed indices.
type Bank struct {
	questions []Question
	byID      map[string]int
}

// NewBank builds a bank from questions. Duplicate IDs are rejected.
func NewBank(questions []Question) (*Bank, error) {
	b := &Bank{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}
	for _, q := range questions {
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question ID: %q", q.ID)
		}
		b.byID[q.ID] = len(b.questions)
		b.questions = append(b.questions, q)
	}
	return b, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

func (b *Bank) ByID(_ context.Context, id string) (*Question, error) {
	i, ok := b.byID[id]
	if !ok {
		return nil, nil
	}
	q := b.questions[i]
	return &q, nil
}

func (b *Bank) BySubject(ctx context.Context, subject Subject, limit int) ([]Question, error) {
	return b.Filtered(ctx, Criteria{Subject: subject, Limit: limit})
}

func (b *Bank) ByTopic(ctx context.Context, topic string, limit int) ([]Question, error) {
	return b.Filtered(ctx, Criteria{Topic: topic, Limit: limit})
}

func (b *Bank) ByDifficulty(ctx context.Context, difficulty Difficulty, limit int) ([]Question, error) {
	return b.Filtered(ctx, Criteria{Difficulty: difficulty, Limit: limit})
}

func (b *Bank) ByGrade(ctx context.Context, grade string, limit int) ([]Question, error) {
	return b.Filtered(ctx, Criteria{Grade: grade, Limit: limit})
}

func (b *Bank) Filtered(_ context.Context, c Criteria) ([]Question, error) {
	var out []Question
	for i := range b.questions {
		if !c.Matches(&b.questions[i]) {
			continue
		}
		out = append(out, b.questions[i])
		if c.Limit > 0 && len(out) == c.Limit {
			break
		}
	}
	return out, nil
}

func (b *Bank) Topics(_ context.Context, subject Subject) ([]string, error) {
	return DistinctTopics(b.questions, subject), nil
}

func (b *Bank) Subjects(_ context.Context) ([]Subject, error) {
	return PresentSubjects(b.questions), nil
}

// DistinctTopics returns the topics of qs in first-seen order, restricted to
// subject when it is non-empty.
func DistinctTopics(qs []Question, subject Subject) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, q := range qs {
		if subject != "" && q.Subject != subject {
			continue
		}
		if q.Topic == "" || seen[q.Topic] {
			continue
		}
		seen[q.Topic] = true
		topics = append(topics, q.Topic)
	}
	return topics
}

// PresentSubjects returns the subjects that occur in qs, in display order.
func PresentSubjects(qs []Question) []Subject {
	var out []Subject
	for _, s := range AllSubjects() {
		if slices.ContainsFunc(qs, func(q Question) bool { return q.Subject == s }) {
			out = append(out, s)
		}
	}
	return out
}
