package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions in the shape ent's migrate package expects.
var (
	documentsColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "data", Type: field.TypeBytes},
		{Name: "updated_at", Type: field.TypeTime},
	}
	documentsTable = &schema.Table{
		Name:       "performance_documents",
		Columns:    documentsColumns,
		PrimaryKey: []*schema.Column{documentsColumns[0]},
	}

	questionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "body", Type: field.TypeBytes, Comment: "Full question record as JSON"},
	}
	questionsTable = &schema.Table{
		Name:       "questions",
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "question_subject_topic", Columns: []*schema.Column{questionsColumns[1], questionsColumns[2]}},
			{Name: "question_difficulty", Columns: []*schema.Column{questionsColumns[3]}},
		},
	}

	tables = []*schema.Table{documentsTable, questionsTable}
)

// migrate creates or updates all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
