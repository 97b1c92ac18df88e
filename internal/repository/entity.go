// Package repository persists portfolio records through gorm.
package repository

import (
	"context"
	"errors"
	"strings"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/models"

	"gorm.io/gorm"
)

// MediaEntity is a row that owns a list of uploaded files.
type MediaEntity interface {
	models.Project | models.Professional | models.Slide
}

// EntityRepository is the CRUD surface shared by the media-backed tables.
// label names the record in error messages ("Project").
type EntityRepository[T MediaEntity] struct {
	db    *gorm.DB
	label string
}

func newEntityRepository[T MediaEntity](db *gorm.DB, label string) *EntityRepository[T] {
	return &EntityRepository[T]{db: db, label: label}
}

// Insert stores a new row. A taken id is reported as a duplicate.
func (r *EntityRepository[T]) Insert(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, "Failed to add "+strings.ToLower(r.label), r.label+" already exists")
	}
	return nil
}

func (r *EntityRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound(r.label)
	}
	if err != nil {
		return nil, apperrors.Database("Failed to fetch "+strings.ToLower(r.label), err)
	}
	return &row, nil
}

// Update writes the given columns and returns how many rows matched.
func (r *EntityRepository[T]) Update(ctx context.Context, id string, values map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return 0, translate(res.Error, "Failed to update "+strings.ToLower(r.label), r.label+" already exists")
	}
	return res.RowsAffected, nil
}

// Delete removes the row and returns how many rows went away.
func (r *EntityRepository[T]) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return 0, apperrors.Database("Failed to delete "+strings.ToLower(r.label), res.Error)
	}
	return res.RowsAffected, nil
}

// ListAll returns every row, oldest first.
func (r *EntityRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Database("Failed to fetch "+strings.ToLower(r.label)+"s", err)
	}
	return rows, nil
}

// ReferencedMedia returns every media path referenced by any row.
func (r *EntityRepository[T]) ReferencedMedia(ctx context.Context) ([]string, error) {
	var lists []models.StringList
	if err := r.db.WithContext(ctx).Model(new(T)).Pluck("media", &lists).Error; err != nil {
		return nil, apperrors.Database("Failed to read "+strings.ToLower(r.label)+" media", err)
	}
	out := []string{}
	for _, l := range lists {
		out = append(out, l...)
	}
	return out, nil
}

// translate maps a write failure to a duplicate or database error.
func translate(err error, dbMsg, dupMsg string) error {
	if isDuplicate(err) {
		return apperrors.Duplicate(dupMsg, err)
	}
	return apperrors.Database(dbMsg, err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}
