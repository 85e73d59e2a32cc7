// ABOUTME: Tests for credential persistence
// ABOUTME: Validates the token file lifecycle, permissions and JWT expiry peek

package credential

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	token, err := s.Token()
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if token != "" {
		t.Errorf("expected empty token, got %q", token)
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewFileStore(dir)

	if err := s.Save("tok-abc"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	token, err := s.Token()
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if token != "tok-abc" {
		t.Errorf("expected tok-abc, got %q", token)
	}

	info, err := os.Stat(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("stat credential: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

func TestFileStore_SaveReplaces(t *testing.T) {
	s := NewFileStore(t.TempDir())
	s.Save("first")
	s.Save("second")

	token, _ := s.Token()
	if token != "second" {
		t.Errorf("expected second, got %q", token)
	}

	entries, _ := os.ReadDir(s.configDir)
	if len(entries) != 1 {
		t.Errorf("expected only the credential file, found %d entries", len(entries))
	}
}

func TestFileStore_SaveRejectsEmpty(t *testing.T) {
	s := NewFileStore(t.TempDir())
	if err := s.Save(""); err == nil {
		t.Error("expected error saving empty credential")
	}
}

func TestFileStore_Clear(t *testing.T) {
	s := NewFileStore(t.TempDir())
	s.Save("tok")

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	token, _ := s.Token()
	if token != "" {
		t.Errorf("expected empty token after clear, got %q", token)
	}

	// Clearing twice is a no-op
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear() error: %v", err)
	}
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, FileName), []byte("tok-xyz\n"), 0600)

	token, err := NewFileStore(dir).Token()
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if token != "tok-xyz" {
		t.Errorf("expected tok-xyz, got %q", token)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("")
	if tok, _ := s.Token(); tok != "" {
		t.Errorf("expected empty, got %q", tok)
	}
	s.Save("m1")
	if tok, _ := s.Token(); tok != "m1" {
		t.Errorf("expected m1, got %q", tok)
	}
	s.Clear()
	if tok, _ := s.Token(); tok != "" {
		t.Errorf("expected empty after clear, got %q", tok)
	}
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("unknown-to-client"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, ok := Expiry(signed)
	if !ok {
		t.Fatal("expected expiry for JWT")
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}
}

func TestExpiry_OpaqueToken(t *testing.T) {
	if _, ok := Expiry("not-a-jwt"); ok {
		t.Error("expected no expiry for opaque token")
	}
	if _, ok := Expiry(""); ok {
		t.Error("expected no expiry for empty token")
	}
}

func TestExpiry_NoExpClaim(t *testing.T) {
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString([]byte("k"))
	if _, ok := Expiry(signed); ok {
		t.Error("expected no expiry without exp claim")
	}
}
