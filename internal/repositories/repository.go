package repositories

import "context"

// Repository aggregates every per-entity repository behind one handle.
// WithTransaction yields a Repository whose operations share one database
// transaction; multi-step mutations (bulk inserts, assignment read-then-
// write) run through it.
type Repository interface {
	Admin() AdminRepository
	Student() StudentRepository
	StudentDetails() StudentDetailsRepository
	Faculty() FacultyRepository
	Course() CourseRepository
	Timetable() TimetableRepository
	Attendance() AttendanceRepository
	Notice() NoticeRepository
	Assignment() AssignmentRepository
	PYQ() PYQRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
