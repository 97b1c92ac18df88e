package service

import (
	"context"
	"path"
	"strings"

	"portfolio-api/internal/models"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/storage"
	pkgmodels "portfolio-api/pkg/models"

	"go.uber.org/zap"
)

// SlideFields carries the scalar fields of a slide. Slide ids are free-form
// names; a uuid is assigned when none is sent.
type SlideFields struct {
	ID      string
	Title   *string
	Caption *string
}

type SlideService struct {
	repo *repository.SlideRepository
	lc   *lifecycle[models.Slide]
}

func NewSlideService(repo *repository.SlideRepository, files Files, notify Notifier, log *zap.SugaredLogger) *SlideService {
	return &SlideService{
		repo: repo,
		lc: &lifecycle[models.Slide]{
			kind:     storage.KindSlides,
			label:    "Slide",
			repo:     repo,
			files:    files,
			notify:   notifierOrNop(notify),
			log:      log.Named("slides"),
			media:    func(s *models.Slide) models.StringList { return s.Media },
			setMedia: func(s *models.Slide, m models.StringList) { s.Media = m },
		},
	}
}

func (s *SlideService) Add(ctx context.Context, f SlideFields, uploads []storage.Upload) (string, error) {
	id, err := newID("Slide", f.ID, false)
	if err != nil {
		return "", err
	}
	row := &models.Slide{
		ID:      id,
		Title:   text(f.Title),
		Caption: optional(f.Caption),
	}
	if row.Title == "" && len(uploads) > 0 {
		row.Title = uploadTitle(uploads[0].Filename)
	}
	if err := validateStruct(titled{Title: row.Title}); err != nil {
		return "", err
	}

	if err := s.lc.add(ctx, id, row, uploads); err != nil {
		return "", err
	}
	return id, nil
}

// uploadTitle names a slide after its file when the client sent only the
// file: "Beach Day.png" becomes "Beach Day".
func uploadTitle(filename string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	if title := strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base))); title != "" {
		return title
	}
	return base
}

func (s *SlideService) Update(ctx context.Context, id string, f SlideFields, kept []string, uploads []storage.Upload) error {
	return s.lc.update(ctx, id, func(cur *models.Slide) (map[string]any, error) {
		title := keepText(f.Title, cur.Title)
		if err := validateStruct(titled{Title: title}); err != nil {
			return nil, err
		}
		return map[string]any{
			"title":   title,
			"caption": keepOptional(f.Caption, cur.Caption),
		}, nil
	}, kept, uploads)
}

func (s *SlideService) Delete(ctx context.Context, id string) error {
	return s.lc.remove(ctx, id)
}

func (s *SlideService) Get(ctx context.Context, id string) (*models.Slide, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SlideService) List(ctx context.Context) ([]models.Slide, error) {
	return s.repo.ListAll(ctx)
}

func (s *SlideService) Summaries(ctx context.Context) ([]pkgmodels.SlideSummary, error) {
	return s.repo.ListSummaries(ctx)
}
