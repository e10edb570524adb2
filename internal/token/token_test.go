package token

import (
	"testing"
	"time"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 0)

	tok, err := m.Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}

func TestParseWrongSecret(t *testing.T) {
	m := NewManager("secret-a", 0)
	other := NewManager("secret-b", 0)

	tok, err := m.Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.Parse(tok); err != ErrInvalidToken {
		t.Errorf("parse with wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestParseExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Hour)

	tok, err := m.Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m.Parse(tok); err != ErrInvalidToken {
		t.Errorf("parse expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestParseGarbage(t *testing.T) {
	m := NewManager("test-secret", 0)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Parse(tok); err != ErrInvalidToken {
			t.Errorf("Parse(%q): err = %v, want ErrInvalidToken", tok, err)
		}
	}
}
