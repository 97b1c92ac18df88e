package api

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/media"
	"portfolio-api/internal/storage"

	"github.com/gin-gonic/gin"
)

// entityInput is a create or update request for a media record, read from
// either a multipart form or a JSON body. Nil pointers are fields the client
// did not send.
type entityInput struct {
	ID          string
	Title       *string
	StartTime   *string
	EndTime     *string
	Skills      []string
	Link        *string
	Company     *string
	Description *string
	Caption     *string
	Kept        []string
	Uploads     []storage.Upload

	closers []io.Closer
}

// Close releases the opened upload parts.
func (in *entityInput) Close() {
	for _, c := range in.closers {
		c.Close()
	}
}

type entityJSON struct {
	ID            string          `json:"id"`
	Title         *string         `json:"title"`
	StartTime     *string         `json:"startTime"`
	EndTime       *string         `json:"endTime"`
	Skills        json.RawMessage `json:"skills"`
	Link          *string         `json:"link"`
	Company       *string         `json:"company"`
	Description   *string         `json:"description"`
	Caption       *string         `json:"caption"`
	ExistingMedia json.RawMessage `json:"existingMedia"`
}

// readEntityInput parses the request. Files are taken from fileFields and at
// most maxFiles are accepted.
func readEntityInput(c *gin.Context, maxFiles int, fileFields ...string) (*entityInput, error) {
	if c.ContentType() == gin.MIMEJSON {
		var body entityJSON
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, apperrors.Validation("Invalid JSON format")
		}
		return &entityInput{
			ID:          body.ID,
			Title:       body.Title,
			StartTime:   body.StartTime,
			EndTime:     body.EndTime,
			Skills:      rawList(body.Skills),
			Link:        body.Link,
			Company:     body.Company,
			Description: body.Description,
			Caption:     body.Caption,
			Kept:        media.ParseKept(rawString(body.ExistingMedia)),
		}, nil
	}

	in := &entityInput{
		ID:          strings.TrimSpace(c.PostForm("id")),
		Title:       formValue(c, "title"),
		StartTime:   formValue(c, "startTime"),
		EndTime:     formValue(c, "endTime"),
		Skills:      formList(c, "skills"),
		Link:        formValue(c, "link"),
		Company:     formValue(c, "company"),
		Description: formValue(c, "description"),
		Caption:     formValue(c, "caption"),
		Kept:        media.ParseKept(c.PostForm("existingMedia")),
	}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return in, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.Validation("Invalid multipart form")
	}

	count := 0
	for _, field := range fileFields {
		count += len(form.File[field])
	}
	if maxFiles > 0 && count > maxFiles {
		return nil, apperrors.Validation(fmt.Sprintf("Too many files: at most %d per request", maxFiles))
	}

	for _, field := range fileFields {
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				in.Close()
				return nil, apperrors.StorageIO("Failed to read upload "+fh.Filename, err)
			}
			in.closers = append(in.closers, f)
			in.Uploads = append(in.Uploads, storage.Upload{Filename: fh.Filename, Size: fh.Size, Body: f})
		}
	}
	return in, nil
}

// formValue returns nil when key was not sent.
func formValue(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

// formList reads a list sent as repeated fields, a JSON array or a comma
// separated string. Absent or blank means not sent.
func formList(c *gin.Context, key string) []string {
	vals, ok := c.GetPostFormArray(key)
	if !ok {
		return nil
	}
	if len(vals) > 1 {
		return vals
	}
	if strings.TrimSpace(vals[0]) == "" {
		return nil
	}
	return media.ParseKept(vals[0])
}

// rawList decodes a JSON array or a string holding a list.
func rawList(raw json.RawMessage) []string {
	s := strings.TrimSpace(rawString(raw))
	if s == "" || s == "null" {
		return nil
	}
	return media.ParseKept(s)
}

// rawString unwraps a JSON string; any other JSON value is returned as text.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
