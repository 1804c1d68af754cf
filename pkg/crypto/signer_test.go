package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestNewUploadSigner_EmptyKey(t *testing.T) {
	if _, err := NewUploadSigner(""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestNewUploadSigner_Base64Key(t *testing.T) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatal(err)
	}
	key := base64.StdEncoding.EncodeToString(raw)

	signer, err := NewUploadSigner(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token := signer.Sign("1/file.pdf", 1000)
	if _, err := signer.Verify("1/file.pdf", token); err != nil {
		t.Errorf("token should verify with same key: %v", err)
	}
}

func TestSignVerify_RoundTrip(t *testing.T) {
	signer, _ := NewUploadSigner("a passphrase")

	token := signer.Sign("42/1234-abc.pdf", 1700000000)
	if !strings.HasPrefix(token, "1700000000.") {
		t.Errorf("token should carry expiry prefix, got %q", token)
	}

	expiresAt, err := signer.Verify("42/1234-abc.pdf", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expiresAt != 1700000000 {
		t.Errorf("expected expiry 1700000000, got %d", expiresAt)
	}
}

func TestVerify_WrongPath(t *testing.T) {
	signer, _ := NewUploadSigner("a passphrase")
	token := signer.Sign("42/file.pdf", 1700000000)

	if _, err := signer.Verify("43/file.pdf", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong path, got %v", err)
	}
}

func TestVerify_TamperedExpiry(t *testing.T) {
	signer, _ := NewUploadSigner("a passphrase")
	token := signer.Sign("42/file.pdf", 1700000000)

	tampered := strings.Replace(token, "1700000000", "1900000000", 1)
	if _, err := signer.Verify("42/file.pdf", tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered expiry, got %v", err)
	}
}

func TestVerify_DifferentKeys(t *testing.T) {
	signerA, _ := NewUploadSigner("key a")
	signerB, _ := NewUploadSigner("key b")

	token := signerA.Sign("42/file.pdf", 1700000000)
	if _, err := signerB.Verify("42/file.pdf", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across keys, got %v", err)
	}
}

func TestVerify_MalformedToken(t *testing.T) {
	signer, _ := NewUploadSigner("a passphrase")
	for _, token := range []string{"", "nodot", "abc.def", "1700000000."} {
		if _, err := signer.Verify("42/file.pdf", token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}
