package attempts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepiq/internal/logger"
	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/store"
)

// ErrUnresolvedTopic is returned when an attempt carries no subject/topic
// and its question cannot be resolved to one.
var ErrUnresolvedTopic = errors.New("attempt cannot be resolved to a topic")

// TopicResolver looks up the question an attempt refers to.
// question.Repository satisfies it.
type TopicResolver interface {
	ByID(ctx context.Context, id string) (*question.Question, error)
}

// Store is the per-user attempt log plus its derived topic mastery cache.
type Store struct {
	repo     store.DocumentRepo
	resolver TopicResolver
	log      *logger.Logger
	now      func() time.Time
	locks    userLocks
}

type Option func(*Store)

// WithResolver sets the resolver used for attempts without a topic.
func WithResolver(r TopicResolver) Option {
	return func(s *Store) { s.resolver = r }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store persisting documents through repo.
func New(repo store.DocumentRepo, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		log:  logger.Nop(),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the user's document. A missing or undecodable record yields an
// empty document; only backend failures are returned as errors.
func (s *Store) Load(ctx context.Context, userID string) (*Document, error) {
	data, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load performance data for %s: %w", userID, err)
	}
	if data == nil {
		return EmptyDocument(userID), nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("discarding unreadable performance document",
			"user_id", userID, "bytes", len(data), "error", err)
		return EmptyDocument(userID), nil
	}
	doc.normalize(userID)
	return &doc, nil
}

// Save overwrites the user's whole document.
func (s *Store) Save(ctx context.Context, userID string, doc *Document) error {
	unlock := s.locks.lock(userID)
	defer unlock()
	return s.save(ctx, userID, doc)
}

func (s *Store) save(ctx context.Context, userID string, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode performance data for %s: %w", userID, err)
	}
	if err := s.repo.Save(ctx, userID, data); err != nil {
		return fmt.Errorf("save performance data for %s: %w", userID, err)
	}
	return nil
}

// RecordAttempts appends attempts to the user's log, persists, recomputes all
// topic masteries and persists again. If any attempt cannot be resolved to a
// topic nothing is written.
func (s *Store) RecordAttempts(ctx context.Context, userID string, attempts []mastery.TestAttempt) (*Document, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	resolved, err := s.resolve(ctx, userID, attempts, now)
	if err != nil {
		return nil, err
	}

	doc, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	doc.Attempts = append(doc.Attempts, resolved...)
	doc.UpdatedAt = now
	if err := s.save(ctx, userID, doc); err != nil {
		return nil, err
	}

	doc.TopicMasteries = mastery.Recompute(userID, doc.Attempts, doc.TopicMasteries, now)
	if err := s.save(ctx, userID, doc); err != nil {
		return nil, err
	}

	s.log.Debug("recorded attempts",
		"user_id", userID, "count", len(resolved), "topics", len(doc.TopicMasteries))
	return doc, nil
}

// resolve returns copies of attempts with identity, ownership, timestamp and
// topic filled in.
func (s *Store) resolve(ctx context.Context, userID string, attempts []mastery.TestAttempt, now time.Time) ([]mastery.TestAttempt, error) {
	out := make([]mastery.TestAttempt, len(attempts))
	for i, a := range attempts {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.UserID == "" {
			a.UserID = userID
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if !a.HasTopic() {
			if err := s.resolveTopic(ctx, &a); err != nil {
				return nil, err
			}
		}
		out[i] = a
	}
	return out, nil
}

func (s *Store) resolveTopic(ctx context.Context, a *mastery.TestAttempt) error {
	if s.resolver == nil || a.QuestionID == "" {
		return fmt.Errorf("%w: question %q", ErrUnresolvedTopic, a.QuestionID)
	}
	q, err := s.resolver.ByID(ctx, a.QuestionID)
	if err != nil {
		return fmt.Errorf("resolve question %s: %w", a.QuestionID, err)
	}
	if q == nil || q.Topic == "" || q.Subject == "" {
		return fmt.Errorf("%w: question %q", ErrUnresolvedTopic, a.QuestionID)
	}
	if a.Subject == "" {
		a.Subject = q.Subject
	}
	if a.Topic == "" {
		a.Topic = q.Topic
	}
	return nil
}

// Reset deletes the user's document.
func (s *Store) Reset(ctx context.Context, userID string) error {
	unlock := s.locks.lock(userID)
	defer unlock()
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("reset performance data for %s: %w", userID, err)
	}
	s.log.Info("performance data reset", "user_id", userID)
	return nil
}

// TopicMasteries returns the stored masteries with trends computed from the
// attempt history.
func (s *Store) TopicMasteries(ctx context.Context, userID string) ([]mastery.TopicMastery, error) {
	doc, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mastery.WithTrends(doc.TopicMasteries, doc.Attempts), nil
}
