package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/events"
	"github.com/campus-erp/records-service/internal/repositories"
	"github.com/campus-erp/records-service/internal/uploads"
	"github.com/campus-erp/records-service/internal/validator"
)

// ServiceManager exposes every domain service behind one handle and owns
// their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Enrollment() EnrollmentService
	Course() CourseService
	TG() TGService
	Attendance() AttendanceService
	Publishing() PublishingService
	Profile() ProfileService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerConfig holds configuration for the service manager.
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level
	DefaultTimeout     time.Duration
}

// ServiceManagerDeps bundles the shared dependencies the services need.
type ServiceManagerDeps struct {
	Repo      repositories.Repository
	Validator *validator.Validator
	Tokens    *auth.TokenService
	Uploader  uploads.Uploader
	Publisher events.EventPublisher
	Logger    *slog.Logger
}

type serviceManager struct {
	deps   ServiceManagerDeps
	config ServiceManagerConfig

	authService       AuthService
	enrollmentService EnrollmentService
	courseService     CourseService
	tgService         TGService
	attendanceService AttendanceService
	publishingService PublishingService
	profileService    ProfileService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(deps ServiceManagerDeps, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{deps: deps, config: config}
}

// NewDefaultServiceManager creates a service manager with default configuration.
func NewDefaultServiceManager(deps ServiceManagerDeps) ServiceManager {
	return NewServiceManager(deps, ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,
		DefaultTimeout:     30 * time.Second,
	})
}

// Initialize sets up all services and their dependencies.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.deps.Repo == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.deps.Validator == nil {
		return fmt.Errorf("validator is required")
	}
	if sm.deps.Tokens == nil {
		return fmt.Errorf("token service is required")
	}

	logger := sm.deps.Logger
	sm.authService = NewAuthService(sm.deps.Repo, sm.deps.Validator, sm.deps.Tokens, logger)
	sm.enrollmentService = NewEnrollmentService(sm.deps.Repo, sm.deps.Validator, sm.deps.Publisher, logger)
	sm.courseService = NewCourseService(sm.deps.Repo, sm.deps.Validator, logger)
	sm.tgService = NewTGService(sm.deps.Repo, logger)
	sm.attendanceService = NewAttendanceService(sm.deps.Repo, sm.deps.Validator, logger)
	sm.publishingService = NewPublishingService(sm.deps.Repo, sm.deps.Validator, sm.deps.Uploader, sm.deps.Publisher, logger)
	sm.profileService = NewProfileService(sm.deps.Repo, sm.deps.Validator, sm.deps.Uploader, logger)

	sm.initialized = true
	logger.Info("service manager initialized")
	return nil
}

func (sm *serviceManager) get(name string, initialized bool) {
	if !initialized {
		panic(fmt.Sprintf("%s service requested before initialization", name))
	}
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("auth", sm.initialized)
	return sm.authService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("enrollment", sm.initialized)
	return sm.enrollmentService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("course", sm.initialized)
	return sm.courseService
}

func (sm *serviceManager) TG() TGService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("tg", sm.initialized)
	return sm.tgService
}

func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("attendance", sm.initialized)
	return sm.attendanceService
}

func (sm *serviceManager) Publishing() PublishingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("publishing", sm.initialized)
	return sm.publishingService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("profile", sm.initialized)
	return sm.profileService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.deps.Repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("service manager shut down")
	return nil
}
