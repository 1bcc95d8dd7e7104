package service

import (
	"errors"
	"testing"
	"time"

	"github.com/tcp_snm/codetrack/internal/track_errors"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, "alice", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserName != "alice" {
		t.Errorf("got user_name %q", claims.UserName)
	}

	if _, err = ParseToken([]byte("other-secret"), token); !errors.Is(err, track_errors.ErrInvalidUserCredentials) {
		t.Errorf("expected wrong secret to be rejected, got %v", err)
	}

	expired, _ := GenerateToken(secret, "alice", time.Now().Add(-time.Minute))
	if _, err = ParseToken(secret, expired); !errors.Is(err, track_errors.ErrInvalidUserCredentials) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := GeneratePasswordHash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !PasswordMatches(hash, "correct horse") {
		t.Errorf("expected password to match")
	}
	if PasswordMatches(hash, "battery staple") {
		t.Errorf("expected other password not to match")
	}
}

func TestValidateInput(t *testing.T) {
	type input struct {
		Name       string `json:"name" validate:"required"`
		Difficulty string `json:"difficulty" validate:"oneof=EASY MEDIUM HARD"`
	}
	err := ValidateInput(input{Difficulty: "EASY"})
	if !errors.Is(err, track_errors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if want := "invalid request, name is required"; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if err = ValidateInput(input{Name: "x", Difficulty: "easy"}); err == nil {
		t.Errorf("expected lower case difficulty to be rejected")
	}
	if err = ValidateInput(input{Name: "x", Difficulty: NormalizeDifficulty(" easy ")}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
