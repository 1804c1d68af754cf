package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/crypto"
)

func TestCreateSignedUploadURL(t *testing.T) {
	signer, err := crypto.NewUploadSigner("test-passphrase")
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &uploadService{
		signer:  signer,
		baseURL: "https://storage.example.com/resumes",
		ttl:     time.Hour,
		now:     func() time.Time { return fixed },
	}

	descriptor, err := svc.CreateSignedUploadURL(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(descriptor.Path, "42/") {
		t.Errorf("expected path under role folder, got %q", descriptor.Path)
	}
	wantPrefix := fmt.Sprintf("42/%d-", fixed.UnixMilli())
	if !strings.HasPrefix(descriptor.Path, wantPrefix) {
		t.Errorf("expected timestamped path prefix %q, got %q", wantPrefix, descriptor.Path)
	}

	if !strings.HasPrefix(descriptor.SignedURL, "https://storage.example.com/resumes/"+descriptor.Path+"?token=") {
		t.Errorf("signed url does not embed path and token: %q", descriptor.SignedURL)
	}

	expiresAt, err := signer.Verify(descriptor.Path, descriptor.Token)
	if err != nil {
		t.Fatalf("token failed verification: %v", err)
	}
	if expiresAt != fixed.Add(time.Hour).Unix() {
		t.Errorf("expected expiry at now+ttl, got %d", expiresAt)
	}
}

func TestCreateSignedUploadURL_UniquePaths(t *testing.T) {
	signer, _ := crypto.NewUploadSigner("test-passphrase")
	svc := NewUploadService(signer, "https://storage.example.com", time.Hour)

	a, err := svc.CreateSignedUploadURL(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.CreateSignedUploadURL(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Path == b.Path {
		t.Errorf("concurrent uploads for one role must not collide: %q", a.Path)
	}
}

func TestCreateSignedUploadURL_NoSigner(t *testing.T) {
	svc := NewUploadService(nil, "https://storage.example.com", time.Hour)
	if _, err := svc.CreateSignedUploadURL(1); err == nil {
		t.Fatal("expected error when signing key is not configured")
	}
}
