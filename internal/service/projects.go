package service

import (
	"context"

	"portfolio-api/internal/models"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/storage"
	pkgmodels "portfolio-api/pkg/models"

	"go.uber.org/zap"
)

// ProjectFields carries the scalar fields of a create or update request.
// A nil pointer means the field was not sent; nil Skills likewise.
type ProjectFields struct {
	ID          string
	Title       *string
	StartTime   *string
	EndTime     *string
	Skills      []string
	Link        *string
	Description *string
}

type ProjectService struct {
	repo *repository.ProjectRepository
	lc   *lifecycle[models.Project]
}

func NewProjectService(repo *repository.ProjectRepository, files Files, notify Notifier, log *zap.SugaredLogger) *ProjectService {
	return &ProjectService{
		repo: repo,
		lc: &lifecycle[models.Project]{
			kind:     storage.KindProjects,
			label:    "Project",
			repo:     repo,
			files:    files,
			notify:   notifierOrNop(notify),
			log:      log.Named("projects"),
			media:    func(p *models.Project) models.StringList { return p.Media },
			setMedia: func(p *models.Project, m models.StringList) { p.Media = m },
		},
	}
}

// Add stores the uploads and inserts the project. It returns the new id.
func (s *ProjectService) Add(ctx context.Context, f ProjectFields, uploads []storage.Upload) (string, error) {
	id, err := newID("Project", f.ID, true)
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

	row := &models.Project{
		ID:          id,
		Title:       text(f.Title),
		StartTime:   start,
		EndTime:     end,
		Skills:      models.StringList(cleanList(f.Skills)),
		Link:        optional(f.Link),
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

// Update applies f, keeps the stored media listed in kept and appends the
// uploads. Omitted or blank fields keep their stored values.
func (s *ProjectService) Update(ctx context.Context, id string, f ProjectFields, kept []string, uploads []storage.Upload) error {
	if err := checkUUID("Project", id); err != nil {
		return err
	}
	return s.lc.update(ctx, id, func(cur *models.Project) (map[string]any, error) {
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
			"link":        keepOptional(f.Link, cur.Link),
			"description": keepOptional(f.Description, cur.Description),
		}
		if f.Skills != nil {
			values["skills"] = models.StringList(cleanList(f.Skills))
		}
		return values, nil
	}, kept, uploads)
}

// Delete removes the project and then its files.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := checkUUID("Project", id); err != nil {
		return err
	}
	return s.lc.remove(ctx, id)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	if err := checkUUID("Project", id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.repo.ListAll(ctx)
}

func (s *ProjectService) Summaries(ctx context.Context) ([]pkgmodels.ProjectSummary, error) {
	return s.repo.ListSummaries(ctx)
}
