package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqliteDocumentRepo implements DocumentRepo on the performance_documents table.
type sqliteDocumentRepo struct {
	db *sql.DB
}

func (r *sqliteDocumentRepo) Load(ctx context.Context, userID string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table(documentsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	return data, nil
}

func (r *sqliteDocumentRepo) Save(ctx context.Context, userID string, data []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(documentsTable.Name).
		Columns("user_id", "data", "updated_at").
		Values(userID, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (r *sqliteDocumentRepo) Delete(ctx context.Context, userID string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(documentsTable.Name).
		Where(entsql.EQ("user_id", userID)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
