package audit

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE audit_logs (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			user_id TEXT,
			email TEXT,
			details TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;
		CREATE INDEX idx_audit_logs_action ON audit_logs(action);
		CREATE INDEX idx_audit_logs_user ON audit_logs(user_id);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating audit schema: %v", err)
	}

	return db
}

func TestAuditRepository_CreateAndList(t *testing.T) {
	repo := NewSQLiteRepository(testDB(t))
	ctx := context.Background()

	entry := &Entry{
		Action: ActionLogin,
		UserID: "usr-001",
		Email:  "jdoe@illinoisestatelaw.com",
		Details: map[string]any{
			"remote": "10.0.0.1",
		},
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.ID == "" {
		t.Error("Create() should generate an ID")
	}

	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("List() total = %d, entries = %d, want 1/1", result.Total, len(result.Entries))
	}

	got := result.Entries[0]
	if got.Action != ActionLogin {
		t.Errorf("Action = %q, want %q", got.Action, ActionLogin)
	}
	if got.Details["remote"] != "10.0.0.1" {
		t.Errorf("Details[remote] = %v, want 10.0.0.1", got.Details["remote"])
	}
}

func TestAuditRepository_FilterByAction(t *testing.T) {
	repo := NewSQLiteRepository(testDB(t))
	ctx := context.Background()

	for _, action := range []string{ActionLogin, ActionLogin, ActionLoginFailed} {
		if err := repo.Create(ctx, &Entry{Action: action, UserID: "usr-001"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{Action: ActionLoginFailed})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 {
		t.Errorf("Total = %d, want 1", result.Total)
	}
}

func TestAuditRepository_Pagination(t *testing.T) {
	repo := NewSQLiteRepository(testDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, &Entry{Action: ActionRegister}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 5 {
		t.Errorf("Total = %d, want 5", result.Total)
	}
	if len(result.Entries) != 2 {
		t.Errorf("len(Entries) = %d, want 2", len(result.Entries))
	}
	if result.Limit != 2 || result.Offset != 0 {
		t.Errorf("Limit/Offset = %d/%d, want 2/0", result.Limit, result.Offset)
	}
}

func TestAuditRepository_LimitClamped(t *testing.T) {
	repo := NewSQLiteRepository(testDB(t))

	result, err := repo.List(context.Background(), Filter{Limit: 10000, Offset: -5})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Limit != 200 {
		t.Errorf("Limit = %d, want clamped to 200", result.Limit)
	}
	if result.Offset != 0 {
		t.Errorf("Offset = %d, want clamped to 0", result.Offset)
	}
}
