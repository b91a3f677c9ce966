package sampler

import (
	"context"
	"fmt"
	"math"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/question"
)

// DefaultFocusRatio is the share of an adaptive test spent on weak topics.
const DefaultFocusRatio = 0.7

// TopicQuota asks for Count questions from one topic.
type TopicQuota struct {
	Subject question.Subject `json:"subject"`
	Topic   string           `json:"topic"`
	Count   int              `json:"count"`
}

// Plan splits an adaptive test into weak-topic quotas and a general remainder.
type Plan struct {
	Focus   []TopicQuota `json:"focus"`
	General int          `json:"general"`
}

// Total is the number of questions the plan asks for.
func (p Plan) Total() int {
	n := p.General
	for _, q := range p.Focus {
		n += q.Count
	}
	return n
}

// FocusPlan spends round(total*ratio) questions on weak topics, split evenly
// with the remainder going to the weakest first, and leaves the rest for
// general practice. weak is expected worst first. A ratio outside (0, 1]
// falls back to DefaultFocusRatio.
func FocusPlan(weak []mastery.TopicMastery, total int, ratio float64) Plan {
	if total <= 0 {
		return Plan{}
	}
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultFocusRatio
	}
	if len(weak) == 0 {
		return Plan{General: total}
	}

	focus := int(math.Round(float64(total) * ratio))
	topics := weak[:min(len(weak), focus)]
	plan := Plan{General: total - focus}
	if len(topics) == 0 {
		plan.General = total
		return plan
	}
	each, extra := focus/len(topics), focus%len(topics)
	for i, tm := range topics {
		n := each
		if i < extra {
			n++
		}
		plan.Focus = append(plan.Focus, TopicQuota{Subject: tm.Subject, Topic: tm.Topic, Count: n})
	}
	return plan
}

// FromPlan fills each focus quota with shuffled questions from its topic,
// then draws the general remainder from the whole pool. Questions already
// chosen are never repeated; shortfalls under-fill.
func (s *Sampler) FromPlan(ctx context.Context, plan Plan) ([]question.Question, error) {
	var out []question.Question
	seen := make(map[string]bool)

	for _, tq := range plan.Focus {
		pool, err := s.repo.Filtered(ctx, question.Criteria{Subject: tq.Subject, Topic: tq.Topic})
		if err != nil {
			return nil, fmt.Errorf("sample topic %s: %w", tq.Topic, err)
		}
		s.shuffle(pool)
		want := tq.Count
		for _, q := range pool {
			if want <= 0 {
				break
			}
			if !seen[q.ID] {
				seen[q.ID] = true
				out = append(out, q)
				want--
			}
		}
	}

	if plan.General > 0 {
		pool, err := s.repo.Filtered(ctx, question.Criteria{})
		if err != nil {
			return nil, fmt.Errorf("sample general: %w", err)
		}
		s.shuffle(pool)
		want := plan.General
		for _, q := range pool {
			if want <= 0 {
				break
			}
			if !seen[q.ID] {
				seen[q.ID] = true
				out = append(out, q)
				want--
			}
		}
	}
	return out, nil
}
