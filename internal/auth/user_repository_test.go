package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestUser(email, name string) *User {
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: "pbkdf2_sha256$310000$deadbeef$deadbeef",
		Role:         RoleStaff,
		IsActive:     true,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := newTestUser("jdoe@illinoisestatelaw.com", "Jane Doe")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() should generate an ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() should set CreatedAt")
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "jdoe@illinoisestatelaw.com" {
		t.Errorf("Email = %q, want %q", got.Email, "jdoe@illinoisestatelaw.com")
	}
	if got.Role != RoleStaff {
		t.Errorf("Role = %q, want %q", got.Role, RoleStaff)
	}
	if !got.IsActive {
		t.Error("IsActive should be true")
	}
}

func TestUserRepository_EmailNormalisedOnCreate(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := newTestUser("  JDoe@IllinoisEstateLaw.com ", "Jane Doe")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Lookup by a differently-cased variant finds the same record
	got, err := repo.GetByEmail(ctx, "JDOE@illinoisestatelaw.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetByEmail() returned ID %q, want %q", got.ID, user.ID)
	}
	if got.Email != "jdoe@illinoisestatelaw.com" {
		t.Errorf("stored email should be normalised, got %q", got.Email)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newTestUser("dup@illinoisestatelaw.com", "First")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Same email, different case and whitespace — still one account per email
	err := repo.Create(ctx, newTestUser(" DUP@illinoisestatelaw.com", "Second"))
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Create() error = %v, want ErrEmailExists", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "usr-missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
	}

	if _, err := repo.GetByEmail(ctx, "ghost@illinoisestatelaw.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_ListNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// Insert with explicit timestamps so ordering is deterministic
	insert := func(id, email, createdAt string) {
		t.Helper()
		_, err := db.ExecContext(ctx,
			`INSERT INTO users (id, email, name, password_hash, role, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, 'staff', 1, ?, ?)`,
			id, email, "User", "hash", createdAt, createdAt)
		if err != nil {
			t.Fatalf("inserting fixture: %v", err)
		}
	}

	insert("usr-old", "old@illinoisestatelaw.com", "2026-01-01T10:00:00Z")
	insert("usr-mid", "mid@illinoisestatelaw.com", "2026-02-01T10:00:00Z")
	insert("usr-new", "new@illinoisestatelaw.com", "2026-03-01T10:00:00Z")

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(users) != 3 {
		t.Fatalf("List() returned %d users, want 3", len(users))
	}

	wantOrder := []string{"usr-new", "usr-mid", "usr-old"}
	for i, want := range wantOrder {
		if users[i].ID != want {
			t.Errorf("users[%d].ID = %q, want %q", i, users[i].ID, want)
		}
	}
}

func TestUserRepository_ListEmpty(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if users == nil {
		t.Error("List() should return an empty slice, not nil")
	}
	if len(users) != 0 {
		t.Errorf("List() returned %d users, want 0", len(users))
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := newTestUser("jdoe@illinoisestatelaw.com", "Jane Doe")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	user.Name = "Jane Q. Doe"
	user.IsActive = false
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Jane Q. Doe" {
		t.Errorf("Name = %q, want %q", got.Name, "Jane Q. Doe")
	}
	if got.IsActive {
		t.Error("IsActive should be false after deactivation")
	}
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	err := repo.Update(context.Background(), &User{ID: "usr-missing", Name: "Nobody", Role: RoleStaff})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Update() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := newTestUser("jdoe@illinoisestatelaw.com", "Jane Doe")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newHash := "pbkdf2_sha256$310000$cafecafe$cafecafe"
	if err := repo.UpdatePassword(ctx, user.ID, newHash); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PasswordHash != newHash {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, newHash)
	}

	if err := repo.UpdatePassword(ctx, "usr-missing", newHash); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdatePassword() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_Count(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}

	if err := repo.Create(ctx, newTestUser("one@illinoisestatelaw.com", "One")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, newTestUser("two@illinoisestatelaw.com", "Two")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestUserRepository_TimestampsParse(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := newTestUser("jdoe@illinoisestatelaw.com", "Jane Doe")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should round-trip through the store")
	}
	if time.Since(got.CreatedAt) > time.Minute {
		t.Errorf("CreatedAt %v should be recent", got.CreatedAt)
	}
}
