package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type StudentDetailsPostgreSQL struct {
	db *gorm.DB
}

func NewStudentDetailsPostgreSQL(db *gorm.DB) repositories.StudentDetailsRepository {
	return &StudentDetailsPostgreSQL{db: db}
}

func (s *StudentDetailsPostgreSQL) Create(ctx context.Context, details *models.StudentDetails) error {
	if err := s.db.WithContext(ctx).Create(details).Error; err != nil {
		return fmt.Errorf("failed to create student details: %w", err)
	}
	return nil
}

func (s *StudentDetailsPostgreSQL) GetByStudentID(ctx context.Context, studentID uint) (*models.StudentDetails, error) {
	var details models.StudentDetails
	if err := s.db.WithContext(ctx).Where("student_id = ?", studentID).First(&details).Error; err != nil {
		return nil, err
	}
	return &details, nil
}

func (s *StudentDetailsPostgreSQL) ExistsByStudentID(ctx context.Context, studentID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.StudentDetails{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check student details existence: %w", err)
	}
	return count > 0, nil
}

func (s *StudentDetailsPostgreSQL) Update(ctx context.Context, details *models.StudentDetails) error {
	if err := s.db.WithContext(ctx).Save(details).Error; err != nil {
		return fmt.Errorf("failed to update student details: %w", err)
	}
	return nil
}
