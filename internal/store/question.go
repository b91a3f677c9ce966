package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/prepiq/internal/question"
)

// QuestionRepo implements question.Repository on the questions table.
// Results are returned in insertion order.
type QuestionRepo struct {
	db *sql.DB
}

var _ question.Repository = (*QuestionRepo)(nil)

// Upsert inserts or replaces questions by ID in a single transaction.
func (r *QuestionRepo) Upsert(ctx context.Context, qs []question.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, q := range qs {
		body, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal question %s: %w", q.ID, err)
		}
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(questionsTable.Name).
			Columns("id", "subject", "topic", "difficulty", "body").
			Values(q.ID, string(q.Subject), q.Topic, string(q.Difficulty), body).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert question %s: %w", q.ID, err)
		}
	}
	return tx.Commit()
}

func (r *QuestionRepo) ByID(ctx context.Context, id string) (*question.Question, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("body").
		From(entsql.Table(questionsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var body []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query question: %w", err)
	}
	var q question.Question
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("decode question %s: %w", id, err)
	}
	return &q, nil
}

func (r *QuestionRepo) BySubject(ctx context.Context, subject question.Subject, limit int) ([]question.Question, error) {
	return r.Filtered(ctx, question.Criteria{Subject: subject, Limit: limit})
}

func (r *QuestionRepo) ByTopic(ctx context.Context, topic string, limit int) ([]question.Question, error) {
	return r.Filtered(ctx, question.Criteria{Topic: topic, Limit: limit})
}

func (r *QuestionRepo) ByDifficulty(ctx context.Context, difficulty question.Difficulty, limit int) ([]question.Question, error) {
	return r.Filtered(ctx, question.Criteria{Difficulty: difficulty, Limit: limit})
}

func (r *QuestionRepo) ByGrade(ctx context.Context, grade string, limit int) ([]question.Question, error) {
	return r.Filtered(ctx, question.Criteria{Grade: grade, Limit: limit})
}

func (r *QuestionRepo) Filtered(ctx context.Context, c question.Criteria) ([]question.Question, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("body").
		From(entsql.Table(questionsTable.Name))

	var preds []*entsql.Predicate
	if c.Subject != "" {
		preds = append(preds, entsql.EQ("subject", string(c.Subject)))
	}
	if c.Difficulty != "" {
		preds = append(preds, entsql.EQ("difficulty", string(c.Difficulty)))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Asc("rowid"))
	// Topic spelling is normalized and grade levels live inside the JSON
	// body, so both are matched below and the limit applied after them.
	if c.Limit > 0 && c.Grade == "" && c.Topic == "" {
		sel.Limit(c.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var q question.Question
		if err := json.Unmarshal(body, &q); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		if !c.Matches(&q) {
			continue
		}
		out = append(out, q)
		if c.Limit > 0 && len(out) == c.Limit {
			break
		}
	}
	return out, rows.Err()
}

func (r *QuestionRepo) Topics(ctx context.Context, subject question.Subject) ([]string, error) {
	qs, err := r.Filtered(ctx, question.Criteria{Subject: subject})
	if err != nil {
		return nil, err
	}
	return question.DistinctTopics(qs, subject), nil
}

func (r *QuestionRepo) Subjects(ctx context.Context) ([]question.Subject, error) {
	qs, err := r.Filtered(ctx, question.Criteria{})
	if err != nil {
		return nil, err
	}
	return question.PresentSubjects(qs), nil
}
