// Package service runs the create, update and delete lifecycle of portfolio
// records and keeps each record's media list in step with the files on disk.
package service

import (
	"context"
	"strings"
	"time"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/storage"
	pkgmodels "portfolio-api/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// Files is the part of the file store the services use.
type Files interface {
	Save(ctx context.Context, kind storage.Kind, up storage.Upload) (string, error)
	Delete(ctx context.Context, rel string) error
}

// Notifier is told about every successful change.
type Notifier interface {
	Publish(event pkgmodels.Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(pkgmodels.Event) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return apperrors.FromValidator(err)
	}
	return nil
}

// text returns the trimmed value, or "" for nil.
func text(in *string) string {
	if in == nil {
		return ""
	}
	return strings.TrimSpace(*in)
}

// optional turns a blank value into nil.
func optional(in *string) *string {
	if t := text(in); t != "" {
		return &t
	}
	return nil
}

// dateLayouts are the accepted spellings of startTime and endTime.
var dateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05", "2006-01"}

// parseDate normalizes a date to YYYY-MM-DD. Blank input yields nil.
func parseDate(field string, in *string) (*string, error) {
	t := text(in)
	if t == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			s := d.UTC().Format(time.DateOnly)
			return &s, nil
		}
	}
	return nil, apperrors.Validation(field + " must be a date (YYYY-MM-DD)")
}

// checkRange rejects an end date before the start date.
func checkRange(start, end *string) error {
	if start != nil && end != nil && *end < *start {
		return apperrors.Validation("endTime must not be before startTime")
	}
	return nil
}

// cleanList trims every entry and drops blanks. A nil input stays nil.
func cleanList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// newID returns the caller's id or a fresh uuid. When strict, a supplied id
// must be a uuid too.
func newID(label, supplied string, strict bool) (string, error) {
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		return uuid.NewString(), nil
	}
	if strict {
		if err := checkUUID(label, supplied); err != nil {
			return "", err
		}
	}
	return supplied, nil
}

func checkUUID(label, id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperrors.Validation("Invalid " + label + " ID format. A valid UUID is required.")
	}
	return nil
}

// titled is the validation shape shared by every media record.
type titled struct {
	Title string `validate:"required,max=255"`
}

// keepText returns the new value, or stored when the new one is omitted or
// blank.
func keepText(in *string, stored string) string {
	if t := text(in); t != "" {
		return t
	}
	return stored
}

func keepOptional(in *string, stored *string) *string {
	if t := optional(in); t != nil {
		return t
	}
	return stored
}

func keepDate(field string, in *string, stored *string) (*string, error) {
	d, err := parseDate(field, in)
	if err != nil || d != nil {
		return d, err
	}
	return stored, nil
}
