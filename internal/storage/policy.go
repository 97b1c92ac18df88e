package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"portfolio-api/internal/apperrors"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

// Policy restricts what may be uploaded.
type Policy struct {
	MaxImageBytes int64
	MaxVideoBytes int64
	// Allowed lists accepted MIME types; empty means DefaultAllowedTypes.
	Allowed []string
}

var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"video/mp4",
	"video/quicktime",
	"video/x-msvideo",
}

func DefaultPolicy() Policy {
	return Policy{
		MaxImageBytes: 10 << 20,
		MaxVideoBytes: 100 << 20,
		Allowed:       DefaultAllowedTypes,
	}
}

// check validates the sniffed type and announced size and returns the byte
// limit that applies to the file.
func (p Policy) check(filename string, mime *mimetype.MIME, announced int64) (int64, error) {
	allowed := p.Allowed
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}
	if !anyIs(mime, allowed) {
		return 0, apperrors.Validation(fmt.Sprintf("file %s: only images and videos are allowed (got %s)", filename, mime.String()))
	}

	limit, label := p.MaxImageBytes, "Image"
	if strings.HasPrefix(mime.String(), "video/") {
		limit, label = p.MaxVideoBytes, "Video"
	}
	if limit <= 0 {
		limit = 1 << 40
	}
	if announced > limit {
		return 0, apperrors.Validation(fmt.Sprintf("%s size should not exceed %dMB", label, limit>>20))
	}
	return limit, nil
}

func anyIs(mime *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		if mime.Is(a) {
			return true
		}
	}
	return false
}

// sniff reads the head of r and detects its type. The returned head must be
// written before the rest of r.
func sniff(r io.Reader) ([]byte, *mimetype.MIME, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, nil, err
	}
	head = head[:n]
	return head, mimetype.Detect(head), nil
}
