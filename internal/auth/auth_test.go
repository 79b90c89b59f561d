package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vaccine-scheduler/internal/model"
)

func TestHashAndCheckPassword(t *testing.T) {
	salt, hash, err := HashPassword("Abc123!@")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if salt == "" || hash == "" {
		t.Fatal("empty salt or hash")
	}
	if !CheckPassword(salt, hash, "Abc123!@") {
		t.Error("expected correct password to verify")
	}
	if CheckPassword(salt, hash, "abc123!@") {
		t.Error("password check must be case-sensitive")
	}
	if CheckPassword("other-salt", hash, "Abc123!@") {
		t.Error("expected mismatch with a different salt")
	}
}

func TestHashPasswordFreshSalt(t *testing.T) {
	s1, h1, _ := HashPassword("Abc123!@")
	s2, h2, _ := HashPassword("Abc123!@")
	if s1 == s2 || h1 == h2 {
		t.Error("expected a new salt and hash per call")
	}
}

func TestHashLongPassword(t *testing.T) {
	pw := "A1!" + strings.Repeat("x", 100)
	salt, hash, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("hash long password: %v", err)
	}
	if !CheckPassword(salt, hash, pw) {
		t.Error("expected long password to verify")
	}
}

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want int
	}{
		{"valid", "Abc123!@", 0},
		{"no upper and no special", "abc12345", 2},
		{"too short only", "Ab1!", 1},
		{"everything wrong", "abc", 4},
		{"no digit", "Abcdefg!", 1},
		{"other specials do not count", "Abc12345$", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PasswordProblems(tt.pw)
			if len(got) != tt.want {
				t.Errorf("PasswordProblems(%q) = %v, want %d problems", tt.pw, got, tt.want)
			}
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  Alice "); got != "alice" {
		t.Errorf("expected alice, got %q", got)
	}
}

func TestTokens(t *testing.T) {
	tk := NewTokens("secret", time.Minute)

	raw, exp, err := tk.Make(model.RolePatient, "alice", "sess-1")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	if exp.IsZero() {
		t.Fatal("zero expiry")
	}

	c, err := tk.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Role != model.RolePatient || c.Subject != "alice" || c.ID != "sess-1" {
		t.Errorf("unexpected claims %+v", c)
	}
}

func TestTokensExpired(t *testing.T) {
	tk := NewTokens("secret", time.Minute)
	base := time.Now()
	tk.now = func() time.Time { return base }

	raw, _, err := tk.Make(model.RoleCaregiver, "bob", "sess-2")
	if err != nil {
		t.Fatalf("make: %v", err)
	}

	tk.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = tk.Parse(raw)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestTokensWrongSecret(t *testing.T) {
	raw, _, _ := NewTokens("secret", time.Minute).Make(model.RolePatient, "alice", "s")
	if _, err := NewTokens("other", time.Minute).Parse(raw); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestLoginLimiter(t *testing.T) {
	l := NewLoginLimiter(0.001, 2)
	base := time.Now()
	l.now = func() time.Time { return base }

	if !l.Allow(model.RolePatient, "alice") || !l.Allow(model.RolePatient, "alice") {
		t.Fatal("expected burst of 2 to pass")
	}
	if l.Allow(model.RolePatient, "alice") {
		t.Fatal("expected third attempt to be throttled")
	}
	if !l.Allow(model.RoleCaregiver, "alice") {
		t.Fatal("limits are per role")
	}

	l.Reset(model.RolePatient, "alice")
	if !l.Allow(model.RolePatient, "alice") {
		t.Fatal("expected reset to restore attempts")
	}
}

func TestLoginLimiterSweepsStale(t *testing.T) {
	l := NewLoginLimiter(1, 1)
	base := time.Now()
	l.now = func() time.Time { return base }
	l.Allow(model.RolePatient, "alice")

	l.now = func() time.Time { return base.Add(staleAfter + time.Second) }
	l.Allow(model.RolePatient, "bob")

	if _, ok := l.clients["patient:alice"]; ok {
		t.Error("expected stale entry to be evicted")
	}
}
