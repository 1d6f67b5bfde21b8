package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type FacultyPostgreSQL struct {
	db *gorm.DB
}

func NewFacultyPostgreSQL(db *gorm.DB) repositories.FacultyRepository {
	return &FacultyPostgreSQL{db: db}
}

func (f *FacultyPostgreSQL) Create(ctx context.Context, faculty *models.Faculty) error {
	if err := f.db.WithContext(ctx).Create(faculty).Error; err != nil {
		return fmt.Errorf("failed to create faculty: %w", err)
	}
	return nil
}

func (f *FacultyPostgreSQL) CreateBatch(ctx context.Context, faculties []models.Faculty) error {
	if len(faculties) == 0 {
		return nil
	}
	if err := f.db.WithContext(ctx).Create(&faculties).Error; err != nil {
		return fmt.Errorf("failed to bulk insert faculties: %w", err)
	}
	return nil
}

func (f *FacultyPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := f.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (f *FacultyPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := f.db.WithContext(ctx).Where("email = ?", email).First(&faculty).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (f *FacultyPostgreSQL) ExistsByEmailOrEmpID(ctx context.Context, email, empID string) (bool, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&models.Faculty{}).
		Where("email = ? OR emp_id = ?", email, empID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check faculty existence: %w", err)
	}
	return count > 0, nil
}

func (f *FacultyPostgreSQL) FindConflict(ctx context.Context, email, empID string, excludeID uint) (*models.Faculty, error) {
	query := f.db.WithContext(ctx).Model(&models.Faculty{}).Where("id <> ?", excludeID)

	switch {
	case email != "" && empID != "":
		query = query.Where("email = ? OR emp_id = ?", email, empID)
	case email != "":
		query = query.Where("email = ?", email)
	case empID != "":
		query = query.Where("emp_id = ?", empID)
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var faculty models.Faculty
	if err := query.First(&faculty).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (f *FacultyPostgreSQL) FindByNaturalKeys(ctx context.Context, emails, empIDs []string) ([]models.Faculty, error) {
	if len(emails) == 0 && len(empIDs) == 0 {
		return nil, nil
	}
	var faculties []models.Faculty
	err := f.db.WithContext(ctx).
		Where("email IN ? OR emp_id IN ?", emails, empIDs).
		Find(&faculties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find faculties by natural keys: %w", err)
	}
	return faculties, nil
}

func (f *FacultyPostgreSQL) ListByDepartment(ctx context.Context, department string) ([]models.Faculty, error) {
	var faculties []models.Faculty
	err := f.db.WithContext(ctx).
		Where("department = ?", department).
		Order("name ASC").
		Find(&faculties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list faculties: %w", err)
	}
	return faculties, nil
}

func (f *FacultyPostgreSQL) ListTGByDepartment(ctx context.Context, department string) ([]models.Faculty, error) {
	var faculties []models.Faculty
	err := f.db.WithContext(ctx).
		Where("department = ? AND is_tg = ?", department, true).
		Order("name ASC").
		Find(&faculties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher guardians: %w", err)
	}
	return faculties, nil
}

func (f *FacultyPostgreSQL) Update(ctx context.Context, faculty *models.Faculty) error {
	if err := f.db.WithContext(ctx).Save(faculty).Error; err != nil {
		return fmt.Errorf("failed to update faculty: %w", err)
	}
	return nil
}
