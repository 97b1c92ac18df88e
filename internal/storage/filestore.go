// Package storage keeps uploaded media files under the public root.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/media"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// UploadsDir is the directory under the public root holding all uploads.
const UploadsDir = "uploads"

// Kind partitions the uploads directory by entity kind.
type Kind string

const (
	KindProjects      Kind = "projects"
	KindProfessionals Kind = "professionals"
	KindSlides        Kind = "slides"
)

func (k Kind) Valid() bool {
	switch k {
	case KindProjects, KindProfessionals, KindSlides:
		return true
	}
	return false
}

// Dir returns the kind's directory relative to the public root.
func (k Kind) Dir() string {
	return path.Join(UploadsDir, string(k))
}

// Upload is one file attached to a request.
type Upload struct {
	Filename string
	Size     int64 // as announced by the client; 0 when unknown
	Body     io.Reader
}

// FileStore saves and removes media files. Paths it hands out are relative
// to the public root and always use forward slashes.
type FileStore struct {
	fs     afero.Fs
	policy Policy
	log    *zap.SugaredLogger
	now    func() time.Time
}

func NewFileStore(fsys afero.Fs, policy Policy, log *zap.SugaredLogger) *FileStore {
	return &FileStore{
		fs:     fsys,
		policy: policy,
		log:    log.Named("filestore"),
		now:    time.Now,
	}
}

// NewLocalFileStore roots a FileStore at publicRoot on the local disk.
func NewLocalFileStore(publicRoot string, policy Policy, log *zap.SugaredLogger) (*FileStore, error) {
	if err := os.MkdirAll(publicRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create public root: %w", err)
	}
	root, err := filepath.Abs(publicRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve public root: %w", err)
	}
	return NewFileStore(afero.NewBasePathFs(afero.NewOsFs(), root), policy, log), nil
}

// Save writes the upload under the kind's directory with a generated name and
// returns its relative path. An existing file is never overwritten.
func (s *FileStore) Save(ctx context.Context, kind Kind, up Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !kind.Valid() {
		return "", apperrors.Validation(fmt.Sprintf("unknown media kind %q", kind))
	}
	if up.Body == nil {
		return "", apperrors.Validation("file " + up.Filename + " is empty")
	}

	head, mime, err := sniff(up.Body)
	if err != nil {
		return "", apperrors.StorageIO("Failed to read upload "+up.Filename, err)
	}
	limit, err := s.policy.check(up.Filename, mime, up.Size)
	if err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(kind.Dir(), 0o755); err != nil {
		return "", apperrors.StorageIO("Failed to create upload directory", err)
	}

	rel := path.Join(kind.Dir(), s.generateName(mime.Extension()))
	f, err := s.fs.OpenFile(rel, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", apperrors.StorageIO("Failed to create "+rel, err)
	}

	body := io.MultiReader(bytes.NewReader(head), up.Body)
	n, copyErr := io.Copy(f, io.LimitReader(body, limit+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil || closeErr != nil:
		s.discard(rel)
		return "", apperrors.StorageIO("Failed to write "+rel, errors.Join(copyErr, closeErr))
	case n > limit:
		s.discard(rel)
		return "", apperrors.Validation(fmt.Sprintf("file %s exceeds the %dMB limit", up.Filename, limit>>20))
	}

	s.log.Debugw("saved upload", "path", rel, "bytes", n, "type", mime.String())
	return rel, nil
}

// Delete removes a stored file. A file that is already gone counts as
// deleted.
func (s *FileStore) Delete(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := resolve(rel)
	if err != nil {
		return err
	}

	err = s.fs.Remove(clean)
	switch {
	case err == nil:
		s.log.Debugw("deleted file", "path", clean)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		s.log.Warnw("file already missing", "path", clean)
		return nil
	default:
		return apperrors.StorageIO("Failed to delete "+clean, err)
	}
}

// Exists reports whether a stored file is present.
func (s *FileStore) Exists(rel string) (bool, error) {
	clean, err := resolve(rel)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, clean)
}

// ModTime returns when a stored file was last written.
func (s *FileStore) ModTime(rel string) (time.Time, error) {
	clean, err := resolve(rel)
	if err != nil {
		return time.Time{}, err
	}
	info, err := s.fs.Stat(clean)
	if err != nil {
		return time.Time{}, apperrors.StorageIO("Failed to stat "+clean, err)
	}
	return info.ModTime(), nil
}

// List returns the relative paths of every file stored for kind.
func (s *FileStore) List(kind Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown media kind %q", kind))
	}
	entries, err := afero.ReadDir(s.fs, kind.Dir())
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperrors.StorageIO("Failed to list "+kind.Dir(), err)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Mode().IsRegular() {
			out = append(out, path.Join(kind.Dir(), e.Name()))
		}
	}
	return out, nil
}

// HTTP exposes the uploads directory for static serving. Directories are not
// listed.
func (s *FileStore) HTTP() http.FileSystem {
	return filesOnly{afero.NewHttpFs(s.fs).Dir(UploadsDir)}
}

type filesOnly struct {
	http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

func (s *FileStore) discard(rel string) {
	if err := s.fs.Remove(rel); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Errorw("failed to remove partial upload", "path", rel, "error", err)
	}
}

// generateName builds "<unix-nano>-<9 random digits><ext>". The extension
// always comes from the sniffed type so a file is served as what it is.
func (s *FileStore) generateName(ext string) string {
	return fmt.Sprintf("%d-%09d%s", s.now().UnixNano(), rand.IntN(1_000_000_000), ext)
}

// resolve normalizes a stored path and makes sure it points inside a kind
// directory.
func resolve(rel string) (string, error) {
	clean := media.Normalize(rel)
	parts := strings.Split(clean, "/")
	if len(parts) < 3 || parts[0] != UploadsDir || !Kind(parts[1]).Valid() {
		return "", apperrors.Validation(fmt.Sprintf("path %q is outside the uploads directory", rel))
	}
	return clean, nil
}
