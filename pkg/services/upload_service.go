package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/crypto"
)

// UploadDescriptor tells a client where to PUT a resume file.
type UploadDescriptor struct {
	SignedURL string `json:"signedUrl"`
	Path      string `json:"path"`
	Token     string `json:"token"`
}

// UploadService mints signed upload destinations for resume files.
type UploadService interface {
	// CreateSignedUploadURL returns a time-limited upload destination under
	// the role's folder.
	CreateSignedUploadURL(roleID int64) (*UploadDescriptor, error)
}

type uploadService struct {
	signer  *crypto.UploadSigner
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewUploadService creates a new UploadService.
func NewUploadService(signer *crypto.UploadSigner, baseURL string, ttl time.Duration) UploadService {
	return &uploadService{
		signer:  signer,
		baseURL: baseURL,
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ UploadService = (*uploadService)(nil)

func (s *uploadService) CreateSignedUploadURL(roleID int64) (*UploadDescriptor, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("upload signing key not configured")
	}

	// Objects live under the role's folder; a uuid keeps concurrent uploads
	// for the same role from colliding.
	path := fmt.Sprintf("%d/%d-%s", roleID, s.now().UnixMilli(), uuid.NewString())
	expiresAt := s.now().Add(s.ttl).Unix()
	token := s.signer.Sign(path, expiresAt)

	return &UploadDescriptor{
		SignedURL: fmt.Sprintf("%s/%s?token=%s", s.baseURL, path, token),
		Path:      path,
		Token:     token,
	}, nil
}
