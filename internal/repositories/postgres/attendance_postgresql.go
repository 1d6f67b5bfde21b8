package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/cache"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type AttendancePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAttendancePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func slotKey(courseID, facultyID uint, date time.Time, periodNumber int) string {
	return fmt.Sprintf("attendance:%d:%d:%s:%d", courseID, facultyID, date.Format("2006-01-02"), periodNumber)
}

func (a *AttendancePostgreSQL) Create(ctx context.Context, attendance *models.Attendance) error {
	if err := a.db.WithContext(ctx).Create(attendance).Error; err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	// A freshly recorded slot invalidates any cached negative probe.
	_ = a.cacheManager.Exists.Delete(ctx, slotKey(attendance.CourseID, attendance.FacultyID, attendance.Date, attendance.PeriodNumber))
	return nil
}

// Exists probes for a recorded session. Only positive results are cached:
// a missing record may be created at any moment.
func (a *AttendancePostgreSQL) Exists(ctx context.Context, courseID, facultyID uint, date time.Time, periodNumber int) (bool, error) {
	key := slotKey(courseID, facultyID, date, periodNumber)

	var cached bool
	if err := a.cacheManager.Exists.Get(ctx, key, &cached); err == nil && cached {
		return true, nil
	}

	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("course_id = ? AND faculty_id = ? AND date = ? AND period_number = ?",
			courseID, facultyID, date.Format("2006-01-02"), periodNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	if count > 0 {
		_ = a.cacheManager.Exists.Set(ctx, key, true, cache.ExistsCacheConfig.TTL)
		return true, nil
	}
	return false, nil
}

func (a *AttendancePostgreSQL) Find(ctx context.Context, filters repositories.AttendanceFilters) ([]models.Attendance, error) {
	query := a.db.WithContext(ctx).Model(&models.Attendance{})

	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filters.FacultyID)
	}
	if filters.Semester != "" {
		query = query.Where("semester = ?", filters.Semester)
	}
	if filters.Section != "" {
		query = query.Where("section = ?", filters.Section)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", filters.DateFrom.Format("2006-01-02"))
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", filters.DateTo.Format("2006-01-02"))
	}

	var records []models.Attendance
	if err := query.Order("date ASC, period_number ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find attendance records: %w", err)
	}
	return records, nil
}
