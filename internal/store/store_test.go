package store

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
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

func TestFileDBUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = s.HistoryRepo().Append(ctx, &HistoryEntry{UserID: "u1", SessionID: "s1", ExamID: "java", TakenAt: time.Now()}, 10)
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.HistoryRepo().List(ctx, "u1", QueryOpts{})
	if err != nil || len(got) != 1 {
		t.Fatalf("List after reopen = %d entries, err %v", len(got), err)
	}
}

func historyEntry(user string, i int, at time.Time) *HistoryEntry {
	return &HistoryEntry{
		UserID:           user,
		SessionID:        fmt.Sprintf("%s-%d", user, i),
		ExamID:           "java",
		Name:             "Core Java Assessment",
		Score:            50 + i,
		Grade:            "F",
		TakenAt:          at,
		TimeSpentMinutes: 12,
		QuestionsCorrect: 5,
		TotalQuestions:   10,
	}
}

func TestHistory_CappedNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 13; i++ {
		if err := repo.Append(ctx, historyEntry("alice", i, base.Add(time.Duration(i)*time.Minute)), DefaultHistoryLimit); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	_ = repo.Append(ctx, historyEntry("bob", 0, base), DefaultHistoryLimit)

	got, err := repo.List(ctx, "alice", QueryOpts{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("got %d entries, want 10", len(got))
	}
	if got[0].Score != 62 || got[9].Score != 53 {
		t.Errorf("order wrong: first=%d last=%d", got[0].Score, got[9].Score)
	}
	if got[0].Status != "completed" || !got[0].TakenAt.Equal(base.Add(12*time.Minute)) {
		t.Errorf("unexpected entry: %+v", got[0])
	}

	bob, _ := repo.List(ctx, "bob", QueryOpts{})
	if len(bob) != 1 {
		t.Errorf("bob has %d entries, want 1", len(bob))
	}
}

func TestHistory_ListFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		e := historyEntry("alice", i, base.Add(time.Duration(i)*time.Hour))
		if i%2 == 1 {
			e.ExamID = "dbms"
		}
		_ = repo.Append(ctx, e, 10)
	}

	got, _ := repo.List(ctx, "alice", QueryOpts{Filter: "dbms"})
	if len(got) != 2 {
		t.Errorf("dbms entries = %d, want 2", len(got))
	}
	got, _ = repo.List(ctx, "alice", QueryOpts{Limit: 1})
	if len(got) != 1 || got[0].Score != 53 {
		t.Errorf("limit 1 = %+v", got)
	}
	got, _ = repo.List(ctx, "alice", QueryOpts{From: base.Add(2 * time.Hour)})
	if len(got) != 2 {
		t.Errorf("from filter = %d entries, want 2", len(got))
	}
}

func TestHistory_DuplicateSessionRejected(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()
	e := historyEntry("alice", 1, time.Now())
	if err := repo.Append(ctx, e, 10); err != nil {
		t.Fatal(err)
	}
	dup := historyEntry("alice", 1, time.Now())
	if err := repo.Append(ctx, dup, 10); err == nil {
		t.Error("expected unique violation for repeated session")
	}
}

func TestHistory_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()
	_ = repo.Append(ctx, historyEntry("alice", 1, time.Now()), 10)
	if err := repo.Clear(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.List(ctx, "alice", QueryOpts{})
	if len(got) != 0 {
		t.Errorf("got %d entries after clear", len(got))
	}
}

func TestActivity_Capped(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 105; i++ {
		a := &Activity{
			UserID: "alice",
			Action: ActionExamStarted,
			ExamID: "c",
			Data:   map[string]any{"n": i},
			At:     base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Append(ctx, a, DefaultActivityLimit); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	got, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 100 {
		t.Fatalf("got %d activities, want 100", len(got))
	}
	if n, _ := got[0].Data["n"].(float64); n != 104 {
		t.Errorf("newest n = %v, want 104", got[0].Data["n"])
	}
	if n, _ := got[99].Data["n"].(float64); n != 5 {
		t.Errorf("oldest kept n = %v, want 5", got[99].Data["n"])
	}
}

func TestActivity_FilterByUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()
	_ = repo.Append(ctx, &Activity{UserID: "a", Action: ActionExamExited, At: time.Now()}, 100)
	_ = repo.Append(ctx, &Activity{UserID: "b", Action: ActionExamCompleted, At: time.Now()}, 100)

	got, _ := repo.Recent(ctx, QueryOpts{Filter: "b"})
	if len(got) != 1 || got[0].Action != ActionExamCompleted {
		t.Errorf("got %+v", got)
	}
}

func TestProgress(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p, err := repo.Get(ctx, "alice")
	if err != nil || p.TotalExams != 0 {
		t.Fatalf("initial progress = %+v, %v", p, err)
	}

	if _, err := repo.Record(ctx, "alice", true, 156); err != nil {
		t.Fatal(err)
	}
	p, err = repo.Record(ctx, "alice", false, 100)
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalExams != 2 || p.PassedExams != 1 || p.XP != 256 {
		t.Errorf("progress = %+v", p)
	}

	got, _ := repo.Get(ctx, "alice")
	if got.TotalExams != 2 || got.XP != 256 {
		t.Errorf("stored progress = %+v", got)
	}

	if err := repo.Reset(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.Get(ctx, "alice")
	if got.TotalExams != 0 {
		t.Errorf("progress after reset = %+v", got)
	}
}

func TestCertificates(t *testing.T) {
	s := openTestStore(t)
	repo := s.CertificateRepo()
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, exam := range []string{"java", "dbms"} {
		c := &Certificate{
			CredentialID: fmt.Sprintf("%s-2025-00000%d", strings.ToUpper(exam), i),
			UserID:       "alice",
			ExamID:       exam,
			Title:        exam,
			Score:        80 + i,
			Grade:        "B-",
			Tier:         "silver",
			IssuedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Issue(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.List(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ExamID != "dbms" || got[0].Status != "verified" {
		t.Errorf("certificates = %+v", got)
	}

	dup := &Certificate{CredentialID: got[0].CredentialID, UserID: "alice", IssuedAt: base}
	if err := repo.Issue(ctx, dup); err == nil {
		t.Error("expected duplicate credential to fail")
	}

	_ = repo.Clear(ctx, "alice")
	if got, _ := repo.List(ctx, "alice"); len(got) != 0 {
		t.Errorf("certificates after clear = %d", len(got))
	}
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	repo := s.UserRepo()
	ctx := context.Background()

	if _, err := repo.Touch(ctx, "id-a", "Alice"); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(time.Hour)
	_, _ = repo.Touch(ctx, "id-b", "Bob")
	clock = clock.Add(time.Hour)
	u, err := repo.Touch(ctx, "id-a", "Alice K")
	if err != nil {
		t.Fatal(err)
	}
	if !u.CreatedAt.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt changed: %v", u.CreatedAt)
	}

	users, _ := repo.Recent(ctx, 10)
	if len(users) != 2 || users[0].ID != "id-a" || users[0].Name != "Alice K" {
		t.Errorf("users = %+v", users)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m1", Purpose: "practice-gen", InputTokens: 10, OutputTokens: 20, Success: true},
		{Provider: "anthropic", Model: "m1", Purpose: "practice-gen", InputTokens: 5, OutputTokens: 0, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "m2", Purpose: "explain", InputTokens: 1, OutputTokens: 2, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(all) != 3 {
		t.Fatalf("QueryLLMEvents = %d, %v", len(all), err)
	}
	gen, _ := repo.QueryLLMEvents(ctx, QueryOpts{Filter: "practice-gen"})
	if len(gen) != 2 {
		t.Errorf("practice-gen events = %d", len(gen))
	}

	one, err := repo.GetLLMEvent(ctx, all[0].ID)
	if err != nil || one == nil || one.ID != all[0].ID {
		t.Errorf("GetLLMEvent = %+v, %v", one, err)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %+v, %v", missing, err)
	}

	usage, err := repo.LLMUsage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d", len(usage))
	}
	a := usage[0]
	if a.Provider != "anthropic" || a.Requests != 2 || a.Failures != 1 || a.InputTokens != 15 || a.OutputTokens != 20 {
		t.Errorf("anthropic usage = %+v", a)
	}
}

func TestBuildTables(t *testing.T) {
	tables, err := buildTables(entities())
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, tb := range tables {
		names[tb.Name] = true
		if len(tb.PrimaryKey) != 1 || tb.PrimaryKey[0].Name != "id" {
			t.Errorf("%s primary key = %v", tb.Name, tb.PrimaryKey)
		}
	}
	for _, want := range []string{tableHistory, tableActivity, tableProgress, tableCertificates, tableUsers, tableLLMRequests} {
		if !names[want] {
			t.Errorf("missing table %s", want)
		}
	}
}

func TestBuildTables_TextColumnsKeepSize(t *testing.T) {
	tables, err := buildTables(entities())
	if err != nil {
		t.Fatal(err)
	}
	for _, tb := range tables {
		if tb.Name != tableLLMRequests {
			continue
		}
		for _, c := range tb.Columns {
			if c.Name == "request_body" || c.Name == "response_body" {
				if c.Size != math.MaxInt32 {
					t.Errorf("%s size = %d, want %d", c.Name, c.Size, math.MaxInt32)
				}
			}
		}
		return
	}
	t.Fatalf("missing table %s", tableLLMRequests)
}

func TestSnake(t *testing.T) {
	if got := snake("ExamAttempt"); got != "exam_attempt" {
		t.Errorf("snake = %q", got)
	}
}
