package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type AdminPostgreSQL struct {
	db *gorm.DB
}

func NewAdminPostgreSQL(db *gorm.DB) repositories.AdminRepository {
	return &AdminPostgreSQL{db: db}
}

func (a *AdminPostgreSQL) Create(ctx context.Context, admin *models.Admin) error {
	if err := a.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (a *AdminPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := a.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AdminPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AdminPostgreSQL) ExistsByEmailOrEmpID(ctx context.Context, email, empID string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("email = ? OR emp_id = ?", email, empID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	return count > 0, nil
}

func (a *AdminPostgreSQL) Update(ctx context.Context, admin *models.Admin) error {
	if err := a.db.WithContext(ctx).Save(admin).Error; err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	return nil
}
