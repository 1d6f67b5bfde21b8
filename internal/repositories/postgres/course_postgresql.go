package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-erp/records-service/internal/cache"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
	pending      *txInvalidations // non-nil inside a transaction
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client, pending *txInvalidations) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
		pending:      pending,
	}
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// GetByID serves reads through the cache; mutating paths must use
// GetByIDForUpdate instead.
func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := c.db.WithContext(ctx).First(&dbCourse, id).Error; err != nil {
			return nil, err
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetByIDForUpdate bypasses the cache and row-locks the course; only valid
// inside a transaction.
func (c *CoursePostgreSQL) GetByIDForUpdate(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) GetByCode(ctx context.Context, courseCode string) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).Where("course_code = ?", courseCode).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) ExistsByCode(ctx context.Context, courseCode string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("course_code = ?", courseCode).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return count > 0, nil
}

func (c *CoursePostgreSQL) ListByDepartment(ctx context.Context, department string) ([]models.Course, error) {
	var courses []models.Course
	err := c.db.WithContext(ctx).
		Where("department = ?", department).
		Order("course_code ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	c.invalidate(ctx, course.ID)
	return nil
}

// invalidate drops the cached course. Inside a transaction the deletion
// is deferred until the commit, otherwise a concurrent GetByID could
// repopulate the key with the pre-commit row.
func (c *CoursePostgreSQL) invalidate(ctx context.Context, id uint) {
	drop := func(ctx context.Context) {
		_ = c.cacheManager.Course.Delete(ctx, fmt.Sprintf("id:%d", id))
	}
	if c.pending != nil {
		c.pending.add(drop)
		return
	}
	drop(ctx)
}
