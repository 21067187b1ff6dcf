package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/segyhp/growvest-engine/internal/config"
)

// ProofStore persists uploaded deposit proofs and returns the stored reference
type ProofStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Accepted proof formats by sniffed content type
var proofExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// DetectProofType sniffs the content and returns its type and file extension.
// ok is false for anything but JPEG, PNG, GIF or PDF.
func DetectProofType(data []byte) (contentType, ext string, ok bool) {
	contentType = http.DetectContentType(data)
	ext, ok = proofExtensions[contentType]
	return contentType, ext, ok
}

// ProofKey builds a collision-resistant object name: proof-<unix-nanos>-<random><ext>
func ProofKey(now time.Time, ext string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1e9))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("proof-%d-%d%s", now.UnixNano(), n.Int64(), ext), nil
}

// New builds the proof store selected by the storage driver
func New(ctx context.Context, cfg config.StorageConfig) (ProofStore, error) {
	switch cfg.Driver {
	case "s3":
		store, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "local":
		store, err := NewLocalStore(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
