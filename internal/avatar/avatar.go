// Package avatar stores player images on disk, addressed by content hash.
// Uploads arrive as base64 data URLs; identical images land on the same
// file, so re-ingesting is free and races between uploads are harmless.
package avatar

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotImage is returned for payloads that are not PNG or JPEG.
	ErrNotImage = errors.New("avatar: not a supported image type")
	// ErrBadPayload is returned when the data URL cannot be decoded.
	ErrBadPayload = errors.New("avatar: malformed data url")
	// ErrTooLarge is returned when the decoded image exceeds the size limit.
	ErrTooLarge = errors.New("avatar: image exceeds size limit")
)

// Store writes avatars into one directory, each named by the SHA-256 of its
// bytes plus a type extension.
type Store struct {
	dir       string
	urlPrefix string
	maxBytes  int
	logger    *log.Logger
}

// NewStore ensures dir exists and returns a store whose Ingest results are
// served under urlPrefix.
func NewStore(dir, urlPrefix string, maxBytes int, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("avatar: create directory: %w", err)
	}
	return &Store{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		maxBytes:  maxBytes,
		logger:    logger.WithPrefix("avatar"),
	}, nil
}

// Dir reports the directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// Ingest decodes an image data URL, writes the image if it is new, and
// returns the URL it is served under.
func (s *Store) Ingest(dataURL string) (string, error) {
	ext, payload, err := splitDataURL(dataURL)
	if err != nil {
		return "", err
	}
	// Cheap pre-decode bound; the exact check follows the decode.
	if len(payload) > base64.StdEncoding.EncodedLen(s.maxBytes) {
		s.logger.Warn("rejecting oversized avatar", "encoded_bytes", len(payload), "limit", s.maxBytes)
		return "", ErrTooLarge
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(raw) >= s.maxBytes {
		s.logger.Warn("rejecting oversized avatar", "bytes", len(raw), "limit", s.maxBytes)
		return "", ErrTooLarge
	}

	filename := fmt.Sprintf("%x.%s", sha256.Sum256(raw), ext)
	path := filepath.Join(s.dir, filename)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeFileAtomic(path, raw, 0o644); err != nil {
			return "", fmt.Errorf("avatar: store image: %w", err)
		}
		s.logger.Info("stored avatar", "file", filename, "bytes", len(raw))
	}
	return s.urlPrefix + "/" + filename, nil
}

// splitDataURL pulls the file extension and base64 payload out of a URL of
// the form data:image/png;base64,<payload>. Only PNG and JPEG are accepted.
func splitDataURL(u string) (ext, payload string, err error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", "", ErrBadPayload
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", ErrBadPayload
	}
	meta, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", ErrBadPayload
	}
	switch strings.ToLower(meta) {
	case "image/png":
		return "png", payload, nil
	case "image/jpeg":
		return "jpg", payload, nil
	}
	return "", "", ErrNotImage
}

// writeFileAtomic writes through a temp file in the same directory plus a
// rename, so readers only ever observe complete files.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, filename)
}
