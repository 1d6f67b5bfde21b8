package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/cache"
	"github.com/campus-erp/records-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	admin          repositories.AdminRepository
	student        repositories.StudentRepository
	studentDetails repositories.StudentDetailsRepository
	faculty        repositories.FacultyRepository
	course         repositories.CourseRepository
	timetable      repositories.TimetableRepository
	attendance     repositories.AttendanceRepository
	notice         repositories.NoticeRepository
	assignment     repositories.AssignmentRepository
	pyq            repositories.PYQRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// txInvalidations collects cache deletions raised inside a transaction
// so they run only after the transaction commits. Dropping a key before
// commit would let a concurrent read repopulate it with the pre-commit
// row for a full TTL.
type txInvalidations struct {
	mu  sync.Mutex
	fns []func(context.Context)
}

func (p *txInvalidations) add(fn func(context.Context)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fns = append(p.fns, fn)
}

func (p *txInvalidations) run(ctx context.Context) {
	p.mu.Lock()
	fns := p.fns
	p.fns = nil
	p.mu.Unlock()
	for _, fn := range fns {
		fn(ctx)
	}
}

// NewPostgreSQLRepository creates the repository aggregate with all
// sub-repositories wired to the same connection.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	return newWithDB(config.DB, config.RedisClient, nil)
}

func newWithDB(db *gorm.DB, redisClient *redis.Client, pending *txInvalidations) *PostgreSQLRepository {
	cacheManager := cache.NewCacheManager(redisClient)

	repo := &PostgreSQLRepository{
		db:           db,
		redisClient:  redisClient,
		cacheManager: cacheManager,
	}

	repo.admin = NewAdminPostgreSQL(db)
	repo.student = NewStudentPostgreSQL(db)
	repo.studentDetails = NewStudentDetailsPostgreSQL(db)
	repo.faculty = NewFacultyPostgreSQL(db)
	repo.course = NewCoursePostgreSQL(db, redisClient, pending)
	repo.timetable = NewTimetablePostgreSQL(db)
	repo.attendance = NewAttendancePostgreSQL(db, redisClient)
	repo.notice = NewNoticePostgreSQL(db)
	repo.assignment = NewAssignmentPostgreSQL(db)
	repo.pyq = NewPYQPostgreSQL(db)

	return repo
}

func (r *PostgreSQLRepository) Admin() repositories.AdminRepository         { return r.admin }
func (r *PostgreSQLRepository) Student() repositories.StudentRepository     { return r.student }
func (r *PostgreSQLRepository) Faculty() repositories.FacultyRepository     { return r.faculty }
func (r *PostgreSQLRepository) Course() repositories.CourseRepository       { return r.course }
func (r *PostgreSQLRepository) Timetable() repositories.TimetableRepository { return r.timetable }
func (r *PostgreSQLRepository) Notice() repositories.NoticeRepository       { return r.notice }
func (r *PostgreSQLRepository) PYQ() repositories.PYQRepository             { return r.pyq }

func (r *PostgreSQLRepository) StudentDetails() repositories.StudentDetailsRepository {
	return r.studentDetails
}

func (r *PostgreSQLRepository) Attendance() repositories.AttendanceRepository {
	return r.attendance
}

func (r *PostgreSQLRepository) Assignment() repositories.AssignmentRepository {
	return r.assignment
}

// WithTransaction executes fn against a transaction-scoped Repository.
// Cache invalidations raised by fn are held back until the commit lands.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	pending := &txInvalidations{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newWithDB(tx, r.redisClient, pending))
	})
	if err != nil {
		return err
	}
	pending.run(ctx)
	return nil
}

// Ping checks database connectivity.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// Close releases the database connection.
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database: %w", err)
	}
	return sqlDB.Close()
}

// RepositoryManagerImpl manages the repository lifecycle.
type RepositoryManagerImpl struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a repository manager.
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManagerImpl{config: config}
}

func (m *RepositoryManagerImpl) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *RepositoryManagerImpl) GetRepository() repositories.Repository {
	return m.repo
}

func (m *RepositoryManagerImpl) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *RepositoryManagerImpl) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
