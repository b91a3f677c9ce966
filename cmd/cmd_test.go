package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepiq/internal/question"
)

func TestParseAttempts(t *testing.T) {
	data := []byte(`
- question_id: q1
  is_correct: true
  time_spent: 30
- subject: Physics
  topic: Optics
  selected_answer: b
  is_correct: false
  test_id: mock-1
`)
	got, err := parseAttempts(data, "default-test")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "q1", got[0].QuestionID)
	assert.Equal(t, "default-test", got[0].TestID)
	assert.True(t, got[0].IsCorrect)
	assert.Nil(t, got[0].SelectedAnswer)

	assert.Equal(t, question.SubjectPhysics, got[1].Subject)
	assert.Equal(t, "Optics", got[1].Topic)
	assert.Equal(t, "mock-1", got[1].TestID)
	require.NotNil(t, got[1].SelectedAnswer)
	assert.Equal(t, "b", *got[1].SelectedAnswer)
}

func TestParseAttempts_JSON(t *testing.T) {
	got, err := parseAttempts([]byte(`[{"subject":"chemistry","topic":"Bonding","is_correct":true}]`), "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, question.SubjectChemistry, got[0].Subject)
}

func TestParseAttempts_Invalid(t *testing.T) {
	for name, data := range map[string]string{
		"negative time": "- {topic: Optics, subject: physics, time_spent: -1}",
		"no topic":      "- {is_correct: true}",
		"bad subject":   "- {topic: Cells, subject: biology}",
		"not a list":    "topic: Optics",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseAttempts([]byte(data), "")
			assert.Error(t, err)
		})
	}
}

func TestParseQuota(t *testing.T) {
	name, n, err := parseQuota("physics=10")
	require.NoError(t, err)
	assert.Equal(t, "physics", name)
	assert.Equal(t, 10, n)

	for _, bad := range []string{"physics", "=3", "physics=x", "physics=-2"} {
		_, _, err := parseQuota(bad)
		assert.Error(t, err, bad)
	}

	qs, err := parseSubjectQuotas([]string{"chemistry=2", "maths=1"})
	require.NoError(t, err)
	assert.Equal(t, question.SubjectChemistry, qs[0].Subject)
	assert.Equal(t, question.SubjectMathematics, qs[1].Subject)

	_, err = parseDifficultyQuotas([]string{"brutal=1"})
	assert.Error(t, err)
}

func TestValidateSampleFlags(t *testing.T) {
	assert.NoError(t, validateSampleFlags([]string{"physics=5"}, []string{"easy=2"}, 0, 0))
	assert.NoError(t, validateSampleFlags(nil, nil, 10, 0))
	assert.NoError(t, validateSampleFlags(nil, nil, 0, 10))

	for name, err := range map[string]error{
		"no mode":                validateSampleFlags(nil, nil, 0, 0),
		"two modes":              validateSampleFlags([]string{"physics=5"}, nil, 10, 0),
		"negative count":         validateSampleFlags(nil, nil, -1, 0),
		"difficulty with random": validateSampleFlags(nil, []string{"hard=3"}, 10, 0),
		"difficulty adaptive":    validateSampleFlags(nil, []string{"hard=3"}, 0, 10),
	} {
		assert.Error(t, err, name)
	}
	assert.ErrorContains(t, validateSampleFlags(nil, []string{"hard=3"}, 10, 0), "--difficulty")
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestRecordThenRecommend(t *testing.T) {
	t.Setenv("PREPIQ_BACKEND", "sqlite")
	dir := t.TempDir()
	db := filepath.Join(dir, "prepiq.db")

	bank := filepath.Join(dir, "bank.yaml")
	require.NoError(t, os.WriteFile(bank, []byte(`
questions:
  - id: p1
    question: What is the SI unit of force?
    subject: physics
    topic: Laws of Motion
    difficulty: easy
    options:
      - {id: a, text: Newton}
      - {id: b, text: Joule}
    correct_answer: a
`), 0o644))

	attemptsFile := filepath.Join(dir, "attempts.yaml")
	require.NoError(t, os.WriteFile(attemptsFile, []byte(`
- {question_id: p1, is_correct: true}
- {question_id: p1, is_correct: false}
- {question_id: p1, is_correct: false}
`), 0o644))

	out := run(t, "questions", "import", bank, "--db", db)
	assert.Contains(t, out, "Imported 1 of 1")

	out = run(t, "record", attemptsFile, "--db", db, "--user", "alice")
	assert.Contains(t, out, "Recorded 3 attempts")
	assert.Contains(t, out, "Laws of Motion")

	out = run(t, "recommend", "--db", db, "--user", "alice", "--json")
	assert.Contains(t, out, `"practice-physics-laws-of-motion"`)
	assert.Contains(t, out, "33%")

	out = run(t, "performance", "--compare", "--db", db, "--user", "alice", "--json")
	assert.Contains(t, out, `"questions_attempted": 3`)
	assert.Contains(t, out, `"accuracy": 33.33`)

	out = run(t, "reset", "--db", db, "--user", "alice", "--yes")
	assert.Contains(t, out, "reset")

	out = run(t, "topics", "--db", db, "--user", "alice")
	assert.Contains(t, out, "No topics")
}
