// Package storage writes uploaded artwork images to the local filesystem.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds size limit")
	ErrInvalidRef      = errors.New("invalid image reference")
)

// RefPrefix is the URL prefix under which stored files are served.
const RefPrefix = "uploads"

// sniffLen covers every signature mimetype checks for the image kinds we accept.
const sniffLen = 3072

// allowed maps a lower-case extension to the content type its bytes must have.
var allowed = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// Stored describes a file written by Save.
type Stored struct {
	Name        string // generated file name inside the upload directory
	Ref         string // "uploads/<name>", what the database keeps
	ContentType string
	Size        int64
}

type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore creates dir when missing.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// Extension returns the lower-case extension of name when it is accepted.
func Extension(name string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := allowed[ext]
	return ext, ok
}

// Save stores r under a generated name. The caller's file name only
// contributes its extension, and the content must match that extension.
func (s *LocalStore) Save(originalName string, r io.Reader) (*Stored, error) {
	ext, ok := Extension(originalName)
	if !ok {
		return nil, fmt.Errorf("%w: extension of %q", ErrUnsupportedType, originalName)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !detected.Is(allowed[ext]) {
		return nil, fmt.Errorf("%w: content is %s", ErrUnsupportedType, detected.String())
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	written, err := io.Copy(tmp, io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if written > s.maxBytes {
		cleanup()
		return nil, ErrTooLarge
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("close upload: %w", err)
	}

	name := uuid.NewString() + "." + ext
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("move upload into place: %w", err)
	}

	return &Stored{
		Name:        name,
		Ref:         path.Join(RefPrefix, name),
		ContentType: detected.String(),
		Size:        written,
	}, nil
}

// Path resolves a stored reference to a file inside the upload directory.
func (s *LocalStore) Path(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, RefPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(s.dir, name), nil
}

// Remove deletes the file behind ref. A missing file is not an error.
func (s *LocalStore) Remove(ref string) error {
	p, err := s.Path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
