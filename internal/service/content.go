package service

import (
	"context"
	"errors"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/models"
	"portfolio-api/internal/repository"
	pkgmodels "portfolio-api/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contentSection describes one text section.
type contentSection[T repository.Content] struct {
	kind     string // event kind and route segment
	empty    string // message when nothing is stored yet
	required string // message when a required field is blank
	notFound string
	id       func(*T) *string
	columns  func(*T) map[string]any
}

// ContentService manages one of the text sections: home words, experience
// words, about and contact.
type ContentService[T repository.Content] struct {
	repo    *repository.ContentRepository[T]
	section contentSection[T]
	notify  Notifier
	log     *zap.SugaredLogger
}

func newContentService[T repository.Content](repo *repository.ContentRepository[T], section contentSection[T], notify Notifier, log *zap.SugaredLogger) *ContentService[T] {
	return &ContentService[T]{
		repo:    repo,
		section: section,
		notify:  notifierOrNop(notify),
		log:     log.Named(section.kind),
	}
}

func NewHomeWordService(repo *repository.ContentRepository[models.HomeWord], notify Notifier, log *zap.SugaredLogger) *ContentService[models.HomeWord] {
	return newContentService(repo, contentSection[models.HomeWord]{
		kind:     "homewords",
		empty:    "No home word found",
		required: "Title and description are required",
		notFound: "Home word not found",
		id:       func(w *models.HomeWord) *string { return &w.ID },
		columns: func(w *models.HomeWord) map[string]any {
			return map[string]any{"title": w.Title, "description": w.Description}
		},
	}, notify, log)
}

func NewExperienceWordService(repo *repository.ContentRepository[models.ExperienceWord], notify Notifier, log *zap.SugaredLogger) *ContentService[models.ExperienceWord] {
	return newContentService(repo, contentSection[models.ExperienceWord]{
		kind:     "experiencewords",
		empty:    "No experience words found",
		required: "Title and description are required",
		notFound: "Experience word not found",
		id:       func(w *models.ExperienceWord) *string { return &w.ID },
		columns: func(w *models.ExperienceWord) map[string]any {
			return map[string]any{"title": w.Title, "description": w.Description}
		},
	}, notify, log)
}

func NewAboutService(repo *repository.ContentRepository[models.About], notify Notifier, log *zap.SugaredLogger) *ContentService[models.About] {
	return newContentService(repo, contentSection[models.About]{
		kind:     "about",
		empty:    "No about entry found",
		required: "Information, skills, and education are required",
		notFound: "About entry not found",
		id:       func(a *models.About) *string { return &a.ID },
		columns: func(a *models.About) map[string]any {
			return map[string]any{"information": a.Information, "skills": a.Skills, "education": a.Education}
		},
	}, notify, log)
}

func NewContactService(repo *repository.ContentRepository[models.Contact], notify Notifier, log *zap.SugaredLogger) *ContentService[models.Contact] {
	return newContentService(repo, contentSection[models.Contact]{
		kind:     "contact",
		empty:    "No contact entries found",
		required: "Phone number and email are required",
		notFound: "Contact entry not found",
		id:       func(c *models.Contact) *string { return &c.ID },
		columns: func(c *models.Contact) map[string]any {
			return map[string]any{"phone": c.Phone, "email": c.Email, "linkedin": c.LinkedIn, "github": c.GitHub}
		},
	}, notify, log)
}

// Get returns the first stored entry.
func (s *ContentService[T]) Get(ctx context.Context) (*T, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFoundMessage(s.section.empty)
	}
	return &rows[0], nil
}

func (s *ContentService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// Create validates and stores row, assigning a uuid when it has no id.
func (s *ContentService[T]) Create(ctx context.Context, row *T) (string, error) {
	if err := s.check(row); err != nil {
		return "", err
	}
	id := s.section.id(row)
	if *id == "" {
		*id = uuid.NewString()
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return "", err
	}
	s.log.Infow("added", "id", *id)
	s.notify.Publish(pkgmodels.Event{Kind: s.section.kind, Action: pkgmodels.ActionCreated, ID: *id})
	return *id, nil
}

// Update replaces every column of the entry with id.
func (s *ContentService[T]) Update(ctx context.Context, id string, row *T) error {
	if err := s.check(row); err != nil {
		return err
	}
	n, err := s.repo.Update(ctx, id, s.section.columns(row))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundMessage(s.section.notFound)
	}
	s.log.Infow("updated", "id", id)
	s.notify.Publish(pkgmodels.Event{Kind: s.section.kind, Action: pkgmodels.ActionUpdated, ID: id})
	return nil
}

func (s *ContentService[T]) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundMessage(s.section.notFound)
	}
	s.notify.Publish(pkgmodels.Event{Kind: s.section.kind, Action: pkgmodels.ActionDeleted, ID: id})
	return nil
}

// check reports a blank required field with the section's own message and
// any other rule through the validator's wording.
func (s *ContentService[T]) check(row *T) error {
	err := validate.Struct(row)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "notblank" || fe.Tag() == "required" {
				return apperrors.Validation(s.section.required)
			}
		}
	}
	return apperrors.FromValidator(err)
}
