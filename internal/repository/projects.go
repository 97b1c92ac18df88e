package repository

import (
	"context"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/models"
	pkgmodels "portfolio-api/pkg/models"

	"gorm.io/gorm"
)

const summaryColumns = "id, title, start_time, end_time, media"

type ProjectRepository struct {
	*EntityRepository[models.Project]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{newEntityRepository[models.Project](db, "Project")}
}

// ListSummaries reads the list-view projection without descriptions.
func (r *ProjectRepository) ListSummaries(ctx context.Context) ([]pkgmodels.ProjectSummary, error) {
	var rows []models.Project
	err := r.db.WithContext(ctx).Select(summaryColumns).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, apperrors.Database("Failed to fetch project summaries", err)
	}
	out := make([]pkgmodels.ProjectSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, pkgmodels.ProjectSummary{
			ID:        p.ID,
			Title:     p.Title,
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
			Media:     p.Media.Strings(),
		})
	}
	return out, nil
}

type ProfessionalRepository struct {
	*EntityRepository[models.Professional]
}

func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{newEntityRepository[models.Professional](db, "Professional")}
}

func (r *ProfessionalRepository) ListSummaries(ctx context.Context) ([]pkgmodels.ProfessionalSummary, error) {
	var rows []models.Professional
	err := r.db.WithContext(ctx).Select(summaryColumns).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, apperrors.Database("Failed to fetch professional summaries", err)
	}
	out := make([]pkgmodels.ProfessionalSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, pkgmodels.ProfessionalSummary{
			ID:        p.ID,
			Title:     p.Title,
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
			Media:     p.Media.Strings(),
		})
	}
	return out, nil
}

type SlideRepository struct {
	*EntityRepository[models.Slide]
}

func NewSlideRepository(db *gorm.DB) *SlideRepository {
	return &SlideRepository{newEntityRepository[models.Slide](db, "Slide")}
}

func (r *SlideRepository) ListSummaries(ctx context.Context) ([]pkgmodels.SlideSummary, error) {
	var rows []models.Slide
	err := r.db.WithContext(ctx).Select("id, title, media").Order("created_at ASC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, apperrors.Database("Failed to fetch slide summaries", err)
	}
	out := make([]pkgmodels.SlideSummary, 0, len(rows))
	for _, s := range rows {
		out = append(out, pkgmodels.SlideSummary{ID: s.ID, Title: s.Title, Media: s.Media.Strings()})
	}
	return out, nil
}
