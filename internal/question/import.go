package question

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ImportResult holds the result of a bank import.
type ImportResult struct {
	Questions      []Question
	TotalProcessed int
	Skipped        int
	Errors         []string
}

// SheetColumns maps spreadsheet columns to question fields. Columns are
// spreadsheet letters ("A", "B", ...).
type SheetColumns struct {
	SheetName     string // empty = first sheet
	StartRow      int    // 1-based; rows before it are headers
	ID            string
	Subject       string
	Topic         string
	Difficulty    string
	Text          string
	Options       string // "a) 2 m/s | b) 4 m/s"
	CorrectAnswer string
	Explanation   string
	GradeLevels   string // comma separated
	Tags          string // comma separated
	Source        string
}

// DefaultSheetColumns returns the default spreadsheet layout.
func DefaultSheetColumns() SheetColumns {
	return SheetColumns{
		StartRow:      2,
		ID:            "A",
		Subject:       "B",
		Topic:         "C",
		Difficulty:    "D",
		Text:          "E",
		Options:       "F",
		CorrectAnswer: "G",
		Explanation:   "H",
		GradeLevels:   "I",
		Tags:          "J",
		Source:        "K",
	}
}

// LoadFile imports a question bank from a YAML, JSON or XLSX file. Every
// record is validated; invalid records are reported in the result and
// skipped. Only I/O and top-level format problems return an error.
func LoadFile(path string) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadSheet(path, DefaultSheetColumns())
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return LoadDocument(data)
	default:
		return nil, fmt.Errorf("unsupported bank format %q", filepath.Ext(path))
	}
}

// LoadDocument imports a YAML or JSON document holding either a list of
// question records or a mapping with a "questions" list.
func LoadDocument(data []byte) (*ImportResult, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}

	var items []any
	switch v := doc.(type) {
	case nil:
		return &ImportResult{}, nil
	case []any:
		items = v
	case map[string]any:
		list, ok := v["questions"].([]any)
		if !ok {
			return nil, fmt.Errorf("parse bank: expected a \"questions\" list")
		}
		items = list
	default:
		return nil, fmt.Errorf("parse bank: unexpected top-level %T", doc)
	}

	result := &ImportResult{}
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			result.add(i+1, nil, fmt.Errorf("expected a mapping, got %T", item))
			continue
		}
		q, err := decodeRecord(record)
		result.add(i+1, &q, err)
	}
	return result, nil
}

func loadSheet(path string, cols SheetColumns) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := cols.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i < cols.StartRow-1 {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		record, err := rowRecord(row, cols)
		if err != nil {
			result.add(i+1, nil, err)
			continue
		}
		q, err := decodeRecord(record)
		result.add(i+1, &q, err)
	}
	return result, nil
}

func (r *ImportResult) add(row int, q *Question, err error) {
	r.TotalProcessed++
	if err != nil {
		r.Skipped++
		r.Errors = append(r.Errors, fmt.Sprintf("record %d: %v", row, err))
		return
	}
	r.Questions = append(r.Questions, *q)
}

// rowRecord converts a spreadsheet row into a raw record keyed like the
// YAML/JSON format so both paths share validation.
func rowRecord(row []string, cols SheetColumns) (map[string]any, error) {
	cell := func(col string) (string, error) {
		if col == "" {
			return "", nil
		}
		idx, err := excelize.ColumnNameToNumber(col)
		if err != nil {
			return "", err
		}
		if idx-1 >= len(row) {
			return "", nil
		}
		return strings.TrimSpace(row[idx-1]), nil
	}

	record := make(map[string]any)
	scalar := map[string]string{
		"id":             cols.ID,
		"subject":        cols.Subject,
		"topic":          cols.Topic,
		"difficulty":     cols.Difficulty,
		"question":       cols.Text,
		"correct_answer": cols.CorrectAnswer,
		"explanation":    cols.Explanation,
		"source":         cols.Source,
	}
	for key, col := range scalar {
		v, err := cell(col)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		if v == "" {
			continue
		}
		if key == "subject" || key == "difficulty" {
			v = strings.ToLower(v)
		}
		record[key] = v
	}

	lists := map[string]string{"grade_level": cols.GradeLevels, "tags": cols.Tags}
	for key, col := range lists {
		v, err := cell(col)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		if items := splitList(v, ","); len(items) > 0 {
			record[key] = items
		}
	}

	opts, err := cell(cols.Options)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", cols.Options, err)
	}
	if parsed := parseOptions(opts); len(parsed) > 0 {
		record["options"] = parsed
	}
	return record, nil
}

// parseOptions parses "a) text | b) text" into option records. Options
// without an "x)" prefix get sequential letter IDs.
func parseOptions(s string) []any {
	var out []any
	for i, part := range splitList(s, "|") {
		id := string(rune('a' + i))
		text := part
		if k := strings.Index(part, ")"); k > 0 && k <= 3 {
			id = strings.TrimSpace(part[:k])
			text = strings.TrimSpace(part[k+1:])
		}
		out = append(out, map[string]any{"id": id, "text": text})
	}
	return out
}

func splitList(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
