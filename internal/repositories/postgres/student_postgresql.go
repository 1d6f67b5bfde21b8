package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// CreateBatch inserts the whole batch in one statement. Callers run this
// inside WithTransaction so a mid-batch failure rolls everything back.
func (s *StudentPostgreSQL) CreateBatch(ctx context.Context, students []models.Student) error {
	if len(students) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&students).Error; err != nil {
		return fmt.Errorf("failed to bulk insert students: %w", err)
	}
	return nil
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) ExistsByEmailOrURN(ctx context.Context, email, urn string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("email = ? OR urn = ?", email, urn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}
	return count > 0, nil
}

func (s *StudentPostgreSQL) FindByNaturalKeys(ctx context.Context, emails, urns []string) ([]models.Student, error) {
	if len(emails) == 0 && len(urns) == 0 {
		return nil, nil
	}
	var students []models.Student
	err := s.db.WithContext(ctx).
		Where("email IN ? OR urn IN ?", emails, urns).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find students by natural keys: %w", err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) FindByIDs(ctx context.Context, ids []uint) ([]models.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var students []models.Student
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to find students by ids: %w", err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) ListByDepartment(ctx context.Context, department string) ([]models.Student, error) {
	var students []models.Student
	err := s.db.WithContext(ctx).
		Where("department = ?", department).
		Order("urn ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) Search(ctx context.Context, filters repositories.StudentSearchFilters) ([]models.Student, error) {
	query := s.db.WithContext(ctx).Model(&models.Student{})

	if filters.SearchString != "" {
		like := "%" + filters.SearchString + "%"
		query = query.Where("name ILIKE ? OR urn ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if filters.Semester != "" {
		query = query.Where("semester = ?", filters.Semester)
	}
	if filters.Section != "" {
		query = query.Where("section = ?", filters.Section)
	}

	var students []models.Student
	if err := query.Order("urn ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	return students, nil
}

func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}
