package service

import (
	"context"

	"portfolio-api/internal/models"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/storage"
	pkgmodels "portfolio-api/pkg/models"

	"go.uber.org/zap"
)

// ProfessionalFields carries the scalar fields of a create or update request.
// A nil pointer means the field was not sent; nil Skills likewise.
type ProfessionalFields struct {
	ID          string
	Title       *string
	StartTime   *string
	EndTime     *string
	Skills      []string
	Company     *string
	Description *string
}

type ProfessionalService struct {
	repo *repository.ProfessionalRepository
	lc   *lifecycle[models.Professional]
}

func NewProfessionalService(repo *repository.ProfessionalRepository, files Files, notify Notifier, log *zap.SugaredLogger) *ProfessionalService {
	return &ProfessionalService{
		repo: repo,
		lc: &lifecycle[models.Professional]{
			kind:     storage.KindProfessionals,
			label:    "Professional",
			repo:     repo,
			files:    files,
			notify:   notifierOrNop(notify),
			log:      log.Named("professionals"),
			media:    func(p *models.Professional) models.StringList { return p.Media },
			setMedia: func(p *models.Professional, m models.StringList) { p.Media = m },
		},
	}
}

// Add stores the uploads and inserts the professional entry. It returns the new id.
func (s *ProfessionalService) Add(ctx context.Context, f ProfessionalFields, uploads []storage.Upload) (string, error) {
	id, err := newID("Professional", f.ID, true)
	if err != nil {
		return "", err
	}
	start, err := parseDate("startTime", f.StartTime)
	if err != nil {
		return "", err
	}
	end, err := parseDate("endTime", f.EndTime)
	if err != nil {
		return "", err
	}
	if err := checkRange(start, end); err != nil {
		return "", err
	}

	row := &models.Professional{
		ID:          id,
		Title:       text(f.Title),
		StartTime:   start,
		EndTime:     end,
		Skills:      models.StringList(cleanList(f.Skills)),
		Company:     optional(f.Company),
		Description: optional(f.Description),
	}
	if err := validateStruct(titled{Title: row.Title}); err != nil {
		return "", err
	}

	if err := s.lc.add(ctx, id, row, uploads); err != nil {
		return "", err
	}
	return id, nil
}

func (s *ProfessionalService) Update(ctx context.Context, id string, f ProfessionalFields, kept []string, uploads []storage.Upload) error {
	if err := checkUUID("Professional", id); err != nil {
		return err
	}
	return s.lc.update(ctx, id, func(cur *models.Professional) (map[string]any, error) {
		start, err := keepDate("startTime", f.StartTime, cur.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := keepDate("endTime", f.EndTime, cur.EndTime)
		if err != nil {
			return nil, err
		}
		if err := checkRange(start, end); err != nil {
			return nil, err
		}
		title := keepText(f.Title, cur.Title)
		if err := validateStruct(titled{Title: title}); err != nil {
			return nil, err
		}

		values := map[string]any{
			"title":       title,
			"start_time":  start,
			"end_time":    end,
			"company":     keepOptional(f.Company, cur.Company),
			"description": keepOptional(f.Description, cur.Description),
		}
		if f.Skills != nil {
			values["skills"] = models.StringList(cleanList(f.Skills))
		}
		return values, nil
	}, kept, uploads)
}

func (s *ProfessionalService) Delete(ctx context.Context, id string) error {
	if err := checkUUID("Professional", id); err != nil {
		return err
	}
	return s.lc.remove(ctx, id)
}

func (s *ProfessionalService) Get(ctx context.Context, id string) (*models.Professional, error) {
	if err := checkUUID("Professional", id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProfessionalService) List(ctx context.Context) ([]models.Professional, error) {
	return s.repo.ListAll(ctx)
}

func (s *ProfessionalService) Summaries(ctx context.Context) ([]pkgmodels.ProfessionalSummary, error) {
	return s.repo.ListSummaries(ctx)
}
