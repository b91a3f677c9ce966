package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const recordSchemaURL = "schema://question-record.json"

// recordSchema describes one question record in an imported bank.
var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"question": map[string]any{"type": "string", "minLength": 1},
		"subject": map[string]any{
			"type": "string",
			"enum": []any{string(SubjectPhysics), string(SubjectChemistry), string(SubjectMathematics)},
		},
		"topic": map[string]any{"type": "string", "minLength": 1},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{string(DifficultyEasy), string(DifficultyMedium), string(DifficultyHard)},
		},
		"options": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string"},
					"text": map[string]any{"type": "string"},
				},
				"required": []any{"id", "text"},
			},
		},
		"correct_answer": map[string]any{"type": "string"},
		"explanation":    map[string]any{"type": "string"},
		"grade_level": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"source": map[string]any{"type": "string"},
	},
	"required": []any{"id", "question", "subject", "topic", "difficulty"},
}

var (
	compileOnce    sync.Once
	compiledRecord *jsonschema.Schema
	compileErr     error
)

func recordValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not a Go map with typed slices.
		raw, err := json.Marshal(recordSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledRecord, compileErr = c.Compile(recordSchemaURL)
	})
	return compiledRecord, compileErr
}

// decodeRecord validates a raw record against the question schema and
// converts it into a Question.
func decodeRecord(record map[string]any) (Question, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Question{}, fmt.Errorf("marshal record: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Question{}, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := recordValidator()
	if err != nil {
		return Question{}, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Question{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return Question{}, fmt.Errorf("decode question: %w", err)
	}
	return q, nil
}
