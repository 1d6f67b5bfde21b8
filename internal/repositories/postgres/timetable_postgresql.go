package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type TimetablePostgreSQL struct {
	db *gorm.DB
}

func NewTimetablePostgreSQL(db *gorm.DB) repositories.TimetableRepository {
	return &TimetablePostgreSQL{db: db}
}

// Upsert replaces the week for the (department, semester, section) scope,
// leaning on the composite unique index.
func (t *TimetablePostgreSQL) Upsert(ctx context.Context, timetable *models.Timetable) error {
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "department"}, {Name: "semester"}, {Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{"week", "updated_at"}),
		}).
		Create(timetable).Error
	if err != nil {
		return fmt.Errorf("failed to upsert timetable: %w", err)
	}
	return nil
}

func (t *TimetablePostgreSQL) GetByScope(ctx context.Context, department string, semester models.Semester, section string) (*models.Timetable, error) {
	var timetable models.Timetable
	err := t.db.WithContext(ctx).
		Where("department = ? AND semester = ? AND section = ?", department, semester, section).
		First(&timetable).Error
	if err != nil {
		return nil, err
	}
	return &timetable, nil
}

// List returns every timetable. The attendance gap finder scans them all
// and filters by faculty in memory; acceptable at institutional scale.
func (t *TimetablePostgreSQL) List(ctx context.Context) ([]models.Timetable, error) {
	var timetables []models.Timetable
	if err := t.db.WithContext(ctx).Find(&timetables).Error; err != nil {
		return nil, fmt.Errorf("failed to list timetables: %w", err)
	}
	return timetables, nil
}
