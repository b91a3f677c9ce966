package sampler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/prepiq/internal/question"
)

// SubjectQuota asks for Count questions from Subject.
type SubjectQuota struct {
	Subject question.Subject `json:"subject" yaml:"subject"`
	Count   int              `json:"count" yaml:"count"`
}

// DifficultyQuota asks for Count questions of Difficulty, per subject.
type DifficultyQuota struct {
	Difficulty question.Difficulty `json:"difficulty" yaml:"difficulty"`
	Count      int                 `json:"count" yaml:"count"`
}

// Sampler selects question sets from a repository. Shortfalls under-fill:
// a sampler never errors on a small pool and never pads from elsewhere.
type Sampler struct {
	repo question.Repository

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Sampler whose shuffles are driven by seed. The same seed
// against the same repository yields the same selections.
func New(repo question.Repository, seed uint64) *Sampler {
	return &Sampler{
		repo: repo,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *Sampler) shuffle(qs []question.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}

// ByDistribution samples each subject in declared order. With difficulty
// quotas, each bucket contributes its first N questions in repository order
// until the subject quota runs out. Without them the subject pool is
// shuffled and the first Count taken.
func (s *Sampler) ByDistribution(ctx context.Context, subjects []SubjectQuota, difficulties []DifficultyQuota) ([]question.Question, error) {
	var out []question.Question
	seen := make(map[string]bool)
	take := func(q question.Question) bool {
		if seen[q.ID] {
			return false
		}
		seen[q.ID] = true
		out = append(out, q)
		return true
	}

	for _, sq := range subjects {
		if sq.Count <= 0 {
			continue
		}
		pool, err := s.repo.BySubject(ctx, sq.Subject, 0)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", sq.Subject, err)
		}

		remaining := sq.Count
		if len(difficulties) == 0 {
			s.shuffle(pool)
			for _, q := range pool {
				if remaining == 0 {
					break
				}
				if take(q) {
					remaining--
				}
			}
			continue
		}

		for _, dq := range difficulties {
			want := min(dq.Count, remaining)
			for _, q := range pool {
				if want <= 0 {
					break
				}
				if q.Difficulty == dq.Difficulty && take(q) {
					want--
					remaining--
				}
			}
			if remaining == 0 {
				break
			}
		}
	}
	return out, nil
}

// Random returns up to n questions drawn uniformly from the whole pool.
func (s *Sampler) Random(ctx context.Context, n int) ([]question.Question, error) {
	pool, err := s.repo.Filtered(ctx, question.Criteria{})
	if err != nil {
		return nil, fmt.Errorf("sample random: %w", err)
	}
	s.shuffle(pool)
	return pool[:clamp(n, len(pool))], nil
}

// BySubject returns up to n questions from subject, optionally shuffled
// before slicing.
func (s *Sampler) BySubject(ctx context.Context, subject question.Subject, n int, shuffle bool) ([]question.Question, error) {
	pool, err := s.repo.BySubject(ctx, subject, 0)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", subject, err)
	}
	if shuffle {
		s.shuffle(pool)
	}
	return pool[:clamp(n, len(pool))], nil
}

func clamp(n, limit int) int {
	return max(0, min(n, limit))
}
