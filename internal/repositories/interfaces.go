package repositories

import (
	"context"
	"time"

	"github.com/campus-erp/records-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentSearchFilters struct {
	SearchString string          `json:"search_string"` // matches name, urn or email, case-insensitive
	Semester     models.Semester `json:"semester"`
	Section      string          `json:"section"`
}

type AttendanceFilters struct {
	CourseID  *uint           `json:"course_id"`
	FacultyID *uint           `json:"faculty_id"`
	Semester  models.Semester `json:"semester"`
	Section   string          `json:"section"`
	DateFrom  *time.Time      `json:"date_from"`
	DateTo    *time.Time      `json:"date_to"`
}

// ===== PER-ENTITY REPOSITORIES =====

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	ExistsByEmailOrEmpID(ctx context.Context, email, empID string) (bool, error)
	Update(ctx context.Context, admin *models.Admin) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	CreateBatch(ctx context.Context, students []models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	ExistsByEmailOrURN(ctx context.Context, email, urn string) (bool, error)
	// FindByNaturalKeys returns students whose email is in emails OR whose
	// urn is in urns; used by bulk enrollment deduplication.
	FindByNaturalKeys(ctx context.Context, emails, urns []string) ([]models.Student, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Student, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Student, error)
	Search(ctx context.Context, filters StudentSearchFilters) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
}

type StudentDetailsRepository interface {
	Create(ctx context.Context, details *models.StudentDetails) error
	GetByStudentID(ctx context.Context, studentID uint) (*models.StudentDetails, error)
	ExistsByStudentID(ctx context.Context, studentID uint) (bool, error)
	Update(ctx context.Context, details *models.StudentDetails) error
}

type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	CreateBatch(ctx context.Context, faculties []models.Faculty) error
	GetByID(ctx context.Context, id uint) (*models.Faculty, error)
	GetByEmail(ctx context.Context, email string) (*models.Faculty, error)
	ExistsByEmailOrEmpID(ctx context.Context, email, empID string) (bool, error)
	// FindConflict returns a faculty other than excludeID holding either
	// natural key, for profile-update conflict checks. Empty keys are
	// skipped; returns a not-found error when there is no conflict.
	FindConflict(ctx context.Context, email, empID string, excludeID uint) (*models.Faculty, error)
	FindByNaturalKeys(ctx context.Context, emails, empIDs []string) ([]models.Faculty, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Faculty, error)
	ListTGByDepartment(ctx context.Context, department string) ([]models.Faculty, error)
	Update(ctx context.Context, faculty *models.Faculty) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	// GetByIDForUpdate row-locks the course for the duration of the
	// surrounding transaction; assignment mutations go through it.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Course, error)
	GetByCode(ctx context.Context, courseCode string) (*models.Course, error)
	ExistsByCode(ctx context.Context, courseCode string) (bool, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
}

type TimetableRepository interface {
	Upsert(ctx context.Context, timetable *models.Timetable) error
	GetByScope(ctx context.Context, department string, semester models.Semester, section string) (*models.Timetable, error)
	List(ctx context.Context) ([]models.Timetable, error)
}

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	// Exists probes for a recorded session on the exact slot.
	Exists(ctx context.Context, courseID, facultyID uint, date time.Time, periodNumber int) (bool, error)
	Find(ctx context.Context, filters AttendanceFilters) ([]models.Attendance, error)
}

type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	ExistsByNumber(ctx context.Context, noticeNumber string) (bool, error)
	List(ctx context.Context) ([]models.Notice, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	ExistsByAssignmentID(ctx context.Context, assignmentID string) (bool, error)
	List(ctx context.Context) ([]models.Assignment, error)
}

type PYQRepository interface {
	Create(ctx context.Context, pyq *models.PYQ) error
	ExistsForExam(ctx context.Context, courseID uint, examSession, examType string) (bool, error)
	ListByCourse(ctx context.Context, courseID uint) ([]models.PYQ, error)
}
