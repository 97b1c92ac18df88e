package repository

import (
	"context"
	"errors"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/models"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// List returns every admin except the hidden account.
func (r *AdminRepository) List(ctx context.Context, hidden string) ([]models.Admin, error) {
	admins := []models.Admin{}
	q := r.db.WithContext(ctx).Order("account ASC")
	if hidden != "" {
		q = q.Where("account <> ?", hidden)
	}
	if err := q.Find(&admins).Error; err != nil {
		return nil, apperrors.Database("Failed to fetch admins", err)
	}
	return admins, nil
}

func (r *AdminRepository) Get(ctx context.Context, account string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("account = ?", account).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Admin")
	}
	if err != nil {
		return nil, apperrors.Database("Failed to fetch admin", err)
	}
	return &admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return translate(err, "Failed to add admin", "Admin already exists")
	}
	return nil
}

// UpdatePassword stores a new password hash and returns the matched row count.
func (r *AdminRepository) UpdatePassword(ctx context.Context, account, hash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Admin{}).Where("account = ?", account).Update("password", hash)
	if res.Error != nil {
		return 0, apperrors.Database("Failed to update admin", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *AdminRepository) Delete(ctx context.Context, account string) (int64, error) {
	res := r.db.WithContext(ctx).Where("account = ?", account).Delete(&models.Admin{})
	if res.Error != nil {
		return 0, apperrors.Database("Failed to delete admin", res.Error)
	}
	return res.RowsAffected, nil
}
