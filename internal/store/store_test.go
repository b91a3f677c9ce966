package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/abhisek/prepiq/internal/question"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"performance_documents", "questions"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	testDocumentRepo(t, s.DocumentRepo())
}

func TestMemoryDocumentRoundTrip(t *testing.T) {
	testDocumentRepo(t, NewMemoryDocumentRepo())
}

func testDocumentRepo(t *testing.T, repo DocumentRepo) {
	t.Helper()
	ctx := context.Background()

	// Nothing stored yet.
	data, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil payload, got %q", data)
	}

	if err := repo.Save(ctx, "u1", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, "u2", []byte(`{"v":"other"}`)); err != nil {
		t.Fatalf("save u2: %v", err)
	}
	// Overwrite, not merge.
	if err := repo.Save(ctx, "u1", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("save again: %v", err)
	}

	data, err = repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(data, []byte(`{"v":2}`)) {
		t.Errorf("payload = %q, want {\"v\":2}", data)
	}

	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	data, err = repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil after delete, got %q", data)
	}

	// Other users are untouched.
	data, _ = repo.Load(ctx, "u2")
	if data == nil {
		t.Error("u2 payload missing after deleting u1")
	}

	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}

func seedQuestions() []question.Question {
	return []question.Question{
		{ID: "p1", Text: "q", Subject: question.SubjectPhysics, Topic: "Kinematics", Difficulty: question.DifficultyEasy, GradeLevels: []string{"11"}},
		{ID: "p2", Text: "q", Subject: question.SubjectPhysics, Topic: "Optics", Difficulty: question.DifficultyHard, GradeLevels: []string{"12"}},
		{ID: "p3", Text: "q", Subject: question.SubjectPhysics, Topic: "Kinematics", Difficulty: question.DifficultyEasy, GradeLevels: []string{"12"}},
		{ID: "c1", Text: "q", Subject: question.SubjectChemistry, Topic: "Bonding", Difficulty: question.DifficultyMedium, GradeLevels: []string{"11"}},
	}
}

func TestQuestionRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, seedQuestions()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	q, err := repo.ByID(ctx, "p2")
	if err != nil || q == nil {
		t.Fatalf("ByID(p2) = %v, %v", q, err)
	}
	if q.Topic != "Optics" || q.Difficulty != question.DifficultyHard {
		t.Errorf("ByID(p2) = %+v", q)
	}
	if missing, _ := repo.ByID(ctx, "zz"); missing != nil {
		t.Errorf("ByID(zz) = %+v, want nil", missing)
	}

	phys, err := repo.BySubject(ctx, question.SubjectPhysics, 0)
	if err != nil {
		t.Fatalf("BySubject: %v", err)
	}
	if len(phys) != 3 || phys[0].ID != "p1" || phys[2].ID != "p3" {
		t.Errorf("BySubject order = %v", questionIDs(phys))
	}

	limited, _ := repo.BySubject(ctx, question.SubjectPhysics, 2)
	if len(limited) != 2 {
		t.Errorf("BySubject limit = %d, want 2", len(limited))
	}

	grade12, _ := repo.ByGrade(ctx, "12", 1)
	if len(grade12) != 1 || grade12[0].ID != "p2" {
		t.Errorf("ByGrade(12, 1) = %v, want [p2]", questionIDs(grade12))
	}

	easyKin, _ := repo.Filtered(ctx, question.Criteria{Topic: "Kinematics", Difficulty: question.DifficultyEasy})
	if len(easyKin) != 2 {
		t.Errorf("Filtered = %v, want 2 results", questionIDs(easyKin))
	}

	folded, _ := repo.Filtered(ctx, question.Criteria{Topic: "  kinematics ", Limit: 1})
	if len(folded) != 1 || folded[0].ID != "p1" {
		t.Errorf("Filtered(kinematics, 1) = %v, want [p1]", questionIDs(folded))
	}

	topics, _ := repo.Topics(ctx, question.SubjectPhysics)
	if len(topics) != 2 || topics[0] != "Kinematics" {
		t.Errorf("Topics = %v", topics)
	}

	subjects, _ := repo.Subjects(ctx)
	if len(subjects) != 2 || subjects[0] != question.SubjectPhysics || subjects[1] != question.SubjectChemistry {
		t.Errorf("Subjects = %v", subjects)
	}
}

func TestQuestionRepo_UpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	qs := seedQuestions()
	if err := repo.Upsert(ctx, qs); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	qs[0].Topic = "Motion in a Plane"
	if err := repo.Upsert(ctx, qs[:1]); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	all, _ := repo.Filtered(ctx, question.Criteria{})
	if len(all) != 4 {
		t.Fatalf("count = %d, want 4", len(all))
	}
	kin, _ := repo.ByTopic(ctx, "Motion in a Plane", 0)
	if len(kin) != 1 || kin[0].ID != "p1" {
		t.Errorf("ByTopic after update = %v", questionIDs(kin))
	}
}

func TestRedisDocumentRepo_Key(t *testing.T) {
	r := NewRedisDocumentRepo(nil, "")
	if got := r.Key("u1"); got != "prepiq:performance:u1" {
		t.Errorf("Key = %q", got)
	}
	if _, err := r.Load(context.Background(), "u1"); err != ErrNoBackend {
		t.Errorf("Load without client err = %v, want ErrNoBackend", err)
	}
}

func questionIDs(qs []question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
