package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-backoffice/internal/apperror"
	"github.com/fekuna/omnipos-backoffice/internal/artifact"
	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/auth/dto"
	"github.com/fekuna/omnipos-backoffice/internal/auth/password"
	"github.com/fekuna/omnipos-backoffice/internal/auth/remember"
	"github.com/fekuna/omnipos-backoffice/internal/auth/repository"
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	db  *sqlx.DB
	uc  auth.UseCase
	dir string
}

func newFixture(t *testing.T, hasher password.Hasher) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLite(&database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatal(err)
	}
	adminHash, _ := hasher.Hash("admin123")
	if _, err := database.SeedAdmin(ctx, db, adminHash, "admin@example.com"); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	uc := NewAuthUseCase(
		repository.NewSQLiteRepository(db),
		hasher,
		remember.NewFile(filepath.Join(dir, "credentials.txt")),
		artifact.NewWriter(dir),
		logger.FromZap(zaptest.NewLogger(t)),
	)
	return &fixture{db: db, uc: uc, dir: dir}
}

func (f *fixture) userCount(t *testing.T) int {
	t.Helper()
	var n int
	if err := f.db.Get(&n, `SELECT count(*) FROM users`); err != nil {
		t.Fatal(err)
	}
	return n
}

func validRegistration() *dto.RegisterInput {
	return &dto.RegisterInput{
		Username:        "alice",
		Email:           "alice@x.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		AcceptedTerms:   true,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t, password.SHA256{})
	ctx := context.Background()

	user, err := f.uc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 || user.Role != "user" {
		t.Errorf("unexpected user %+v", user)
	}

	identity, err := f.uc.Login(ctx, &dto.LoginInput{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Username != "alice" || identity.Role != "user" || identity.ID != user.ID {
		t.Errorf("unexpected identity %+v", identity)
	}

	if _, err := os.Stat(filepath.Join(f.dir, "welcome_alice.txt")); err != nil {
		t.Errorf("expected welcome note: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *dto.RegisterInput)
	}{
		{"blank username", func(in *dto.RegisterInput) { in.Username = "" }},
		{"whitespace username", func(in *dto.RegisterInput) { in.Username = "   " }},
		{"blank confirm", func(in *dto.RegisterInput) { in.ConfirmPassword = "" }},
		{"mismatch", func(in *dto.RegisterInput) { in.ConfirmPassword = "password2" }},
		{"terms", func(in *dto.RegisterInput) { in.AcceptedTerms = false }},
		{"email shape", func(in *dto.RegisterInput) { in.Email = "alice-at-x" }},
		{"short password", func(in *dto.RegisterInput) { in.Password, in.ConfirmPassword = "short", "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, password.SHA256{})
			before := f.userCount(t)

			in := validRegistration()
			tt.mutate(in)
			_, err := f.uc.Register(context.Background(), in)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if f.userCount(t) != before {
				t.Error("no row should be created")
			}
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *dto.RegisterInput)
	}{
		{"same username", func(in *dto.RegisterInput) { in.Email = "other@x.com" }},
		{"same email", func(in *dto.RegisterInput) { in.Username = "alice2" }},
		{"seeded admin", func(in *dto.RegisterInput) { in.Username, in.Email = "admin", "new@x.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, password.SHA256{})
			ctx := context.Background()
			if _, err := f.uc.Register(ctx, validRegistration()); err != nil {
				t.Fatal(err)
			}
			before := f.userCount(t)

			in := validRegistration()
			tt.mutate(in)
			_, err := f.uc.Register(ctx, in)
			if !errors.Is(err, apperror.ErrConflict) {
				t.Fatalf("expected conflict, got %v", err)
			}
			if f.userCount(t) != before {
				t.Error("no row should be created")
			}
		})
	}
}

func TestRegisterMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *dto.RegisterInput)
		want   string
	}{
		{"blank wins over mismatch", func(in *dto.RegisterInput) { in.Email, in.ConfirmPassword = "", "other" }, "please fill in all fields"},
		{"mismatch wins over terms", func(in *dto.RegisterInput) { in.ConfirmPassword, in.AcceptedTerms = "password2", false }, "passwords do not match"},
		{"terms wins over email", func(in *dto.RegisterInput) { in.AcceptedTerms, in.Email = false, "nope" }, "please agree to the terms and conditions"},
		{"email wins over length", func(in *dto.RegisterInput) { in.Email, in.Password, in.ConfirmPassword = "nope", "short", "short" }, "please enter a valid email address"},
		{"length", func(in *dto.RegisterInput) { in.Password, in.ConfirmPassword = "short", "short" }, "password must be at least 8 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, password.SHA256{})
			in := validRegistration()
			tt.mutate(in)
			_, err := f.uc.Register(context.Background(), in)
			if got := apperror.Message(err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	f := newFixture(t, password.SHA256{})
	ctx := context.Background()

	_, wrongPassword := f.uc.Login(ctx, &dto.LoginInput{Username: "admin", Password: "nope"})
	_, unknownUser := f.uc.Login(ctx, &dto.LoginInput{Username: "ghost", Password: "nope"})

	for _, err := range []error{wrongPassword, unknownUser} {
		if !errors.Is(err, apperror.ErrAuth) {
			t.Fatalf("expected auth error, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("errors differ: %q vs %q", wrongPassword, unknownUser)
	}

	for _, pw := range []string{"", "   "} {
		_, blank := f.uc.Login(ctx, &dto.LoginInput{Username: "admin", Password: pw})
		if !errors.Is(blank, apperror.ErrValidation) {
			t.Errorf("expected validation error for password %q, got %v", pw, blank)
		}
	}
}

func TestSeededAdminLogsIn(t *testing.T) {
	f := newFixture(t, password.SHA256{})

	identity, err := f.uc.Login(context.Background(), &dto.LoginInput{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatal(err)
	}
	if identity.Role != "admin" {
		t.Errorf("expected admin role, got %s", identity.Role)
	}
}

func TestBcryptRegistrationAndLegacyAdmin(t *testing.T) {
	// the admin row is seeded with the bcrypt hasher here, registration too
	f := newFixture(t, password.Bcrypt{Cost: 4})
	ctx := context.Background()

	if _, err := f.uc.Register(ctx, validRegistration()); err != nil {
		t.Fatal(err)
	}
	if _, err := f.uc.Login(ctx, &dto.LoginInput{Username: "alice", Password: "password1"}); err != nil {
		t.Fatalf("bcrypt login: %v", err)
	}

	legacy, _ := password.SHA256{}.Hash("legacy-pass")
	if _, err := f.db.Exec(`INSERT INTO users (username, password, email, role) VALUES ('old', ?, 'old@x.com', 'user')`, legacy); err != nil {
		t.Fatal(err)
	}
	if _, err := f.uc.Login(ctx, &dto.LoginInput{Username: "old", Password: "legacy-pass"}); err != nil {
		t.Fatalf("legacy login: %v", err)
	}
}

func TestRemember(t *testing.T) {
	f := newFixture(t, password.SHA256{})

	if _, ok := f.uc.RememberedUsername(); ok {
		t.Fatal("nothing should be remembered yet")
	}
	if err := f.uc.Remember("alice", true); err != nil {
		t.Fatal(err)
	}
	if name, ok := f.uc.RememberedUsername(); !ok || name != "alice" {
		t.Errorf("got %q, %v", name, ok)
	}
	if err := f.uc.Remember("alice", false); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.uc.RememberedUsername(); ok {
		t.Error("username should be forgotten")
	}
}
