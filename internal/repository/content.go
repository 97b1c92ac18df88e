package repository

import (
	"context"
	"strings"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/models"

	"gorm.io/gorm"
)

// Content is a plain text section without media.
type Content interface {
	models.HomeWord | models.ExperienceWord | models.About | models.Contact
}

// ContentRepository stores one of the text sections (home words, about, ...).
type ContentRepository[T Content] struct {
	db    *gorm.DB
	label string
}

func NewContentRepository[T Content](db *gorm.DB, label string) *ContentRepository[T] {
	return &ContentRepository[T]{db: db, label: label}
}

func (r *ContentRepository[T]) Label() string {
	return r.label
}

func (r *ContentRepository[T]) List(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Database("Failed to fetch "+strings.ToLower(r.label), err)
	}
	return rows, nil
}

func (r *ContentRepository[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, "Failed to add "+strings.ToLower(r.label), r.label+" already exists")
	}
	return nil
}

// Update writes the given columns and returns how many rows matched.
func (r *ContentRepository[T]) Update(ctx context.Context, id string, values map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return 0, apperrors.Database("Failed to update "+strings.ToLower(r.label), res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ContentRepository[T]) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return 0, apperrors.Database("Failed to delete "+strings.ToLower(r.label), res.Error)
	}
	return res.RowsAffected, nil
}
