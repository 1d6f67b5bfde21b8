package services

import (
	"context"
	"io"
	"time"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/validator"
)

// Request DTOs are declared next to their validation tags.
type (
	LoginRequest                = validator.LoginRequest
	RegisterAdminRequest        = validator.RegisterAdminRequest
	RegisterFacultyRequest      = validator.RegisterFacultyRequest
	RegisterStudentRequest      = validator.RegisterStudentRequest
	ChangePasswordRequest       = validator.ChangePasswordRequest
	StudentCandidate            = validator.StudentCandidate
	FacultyCandidate            = validator.FacultyCandidate
	EnrollStudentRequest        = validator.EnrollStudentRequest
	EnrollFacultyRequest        = validator.EnrollFacultyRequest
	AddCourseRequest            = validator.AddCourseRequest
	AssignStudentsToTGRequest   = validator.AssignStudentsToTGRequest
	UpsertTimetableRequest      = validator.UpsertTimetableRequest
	TimetableDayRequest         = validator.TimetableDayRequest
	TimetablePeriodRequest      = validator.TimetablePeriodRequest
	MarkAttendanceRequest       = validator.MarkAttendanceRequest
	StudentMarkRequest          = validator.StudentMarkRequest
	PublishNoticeRequest        = validator.PublishNoticeRequest
	AddAssignmentRequest        = validator.AddAssignmentRequest
	UploadPYQRequest            = validator.UploadPYQRequest
	StudentDetailsRequest       = validator.StudentDetailsRequest
	GuardianContactRequest      = validator.GuardianContactRequest
	AddressRequest              = validator.AddressRequest
	UpdateFacultyProfileRequest = validator.UpdateFacultyProfileRequest
	SearchStudentQuery          = validator.SearchStudentQuery
)

// LoginResponse is the successful login payload for every role.
type LoginResponse struct {
	AuthToken string          `json:"authToken"`
	Name      string          `json:"name"`
	UserType  models.UserRole `json:"userType"`
	ID        uint            `json:"id"`
}

// EnrollmentResult reports the outcome of one bulk enrollment batch.
type EnrollmentResult struct {
	Added  int `json:"added"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// AttendanceGap is one timetabled session missing an attendance record
// within the trailing working-day window.
type AttendanceGap struct {
	CourseCode      string          `json:"course_code"`
	CourseName      string          `json:"course_name"`
	CourseShortName string          `json:"course_short_name"`
	Department      string          `json:"department"`
	Semester        models.Semester `json:"semester"`
	Section         string          `json:"section"`
	Day             string          `json:"day"`
	Date            time.Time       `json:"date"`
	PeriodNumber    int             `json:"period_number"`
}

type AuthService interface {
	LoginAdmin(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	LoginFaculty(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	LoginStudent(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*models.Admin, error)
	RegisterFaculty(ctx context.Context, req RegisterFacultyRequest) (*models.Faculty, error)
	RegisterStudent(ctx context.Context, req RegisterStudentRequest) (*models.Student, error)
	ChangePassword(ctx context.Context, caller auth.Identity, req ChangePasswordRequest) error
}

type EnrollmentService interface {
	// EnrollStudent enrolls a single student with a conflict check on the
	// natural keys; the generated credential is seeded from the email.
	EnrollStudent(ctx context.Context, department string, req EnrollStudentRequest) (*models.Student, error)
	EnrollFacultyMember(ctx context.Context, department string, req EnrollFacultyRequest) (*models.Faculty, error)
	// EnrollStudents runs the batch pipeline: drop candidates missing a
	// natural key, skip those already present, insert the rest.
	EnrollStudents(ctx context.Context, department string, batch []StudentCandidate) (*EnrollmentResult, error)
	EnrollFaculty(ctx context.Context, department string, batch []FacultyCandidate) (*EnrollmentResult, error)
	// ImportStudentRoster parses an .xlsx roster into candidates and feeds
	// them through EnrollStudents.
	ImportStudentRoster(ctx context.Context, department string, roster io.Reader) (*EnrollmentResult, error)
}

type CourseService interface {
	AddCourse(ctx context.Context, department string, req AddCourseRequest) (*models.Course, error)
	ListCourses(ctx context.Context, department string) ([]models.Course, error)
	GetFacultiesByCourse(ctx context.Context, courseID uint) ([]models.FacultyRef, error)
	AssignFaculty(ctx context.Context, courseID, facultyID uint) (*models.Course, error)
	RemoveFaculty(ctx context.Context, courseID, facultyID uint) (*models.Course, error)
}

type TGService interface {
	AssignTG(ctx context.Context, facultyID uint) (*models.Faculty, error)
	UnassignTG(ctx context.Context, facultyID uint) (*models.Faculty, error)
	AssignStudentToTG(ctx context.Context, facultyID, studentID uint) error
	// AssignStudentsToTG applies the whole batch or none of it.
	AssignStudentsToTG(ctx context.Context, facultyID uint, studentIDs []uint) (int, error)
	ListTGs(ctx context.Context, department string) ([]models.Faculty, error)
}

type AttendanceService interface {
	MarkAttendance(ctx context.Context, caller auth.Identity, req MarkAttendanceRequest) (*models.Attendance, error)
	UpsertTimetable(ctx context.Context, department string, req UpsertTimetableRequest) (*models.Timetable, error)
	GetTimetable(ctx context.Context, department string, semester models.Semester, section string) (*models.Timetable, error)
	// FindAttendanceGaps scans the faculty's timetabled sessions over the
	// trailing five working days and returns the unrecorded ones.
	FindAttendanceGaps(ctx context.Context, facultyID uint, now time.Time) ([]AttendanceGap, error)
}

type PublishingService interface {
	PublishNotice(ctx context.Context, author auth.Identity, req PublishNoticeRequest, pdfPath string) (*models.Notice, error)
	ListNotices(ctx context.Context) ([]models.Notice, error)
	AddAssignment(ctx context.Context, author auth.Identity, req AddAssignmentRequest, filePath string) (*models.Assignment, error)
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	UploadPYQ(ctx context.Context, author auth.Identity, req UploadPYQRequest, pdfPath string) (*models.PYQ, error)
	ListPYQsByCourse(ctx context.Context, courseID uint) ([]models.PYQ, error)
}

type ProfileService interface {
	// GetAdmin resolves the calling admin's record; most admin operations
	// scope their work to the admin's department.
	GetAdmin(ctx context.Context, adminID uint) (*models.Admin, error)
	AddStudentDetails(ctx context.Context, caller auth.Identity, req StudentDetailsRequest) (*models.StudentDetails, error)
	GetStudentDetails(ctx context.Context, studentID uint) (*models.StudentDetails, error)
	GetBasicDetails(ctx context.Context, studentID uint) (*models.Student, error)
	UpdateStudentDetails(ctx context.Context, studentID uint, req StudentDetailsRequest) (*models.StudentDetails, error)
	SearchStudents(ctx context.Context, query SearchStudentQuery) ([]models.Student, error)
	ListStudentsByDepartment(ctx context.Context, department string) ([]models.Student, error)
	ListFacultyByDepartment(ctx context.Context, department string) ([]models.Faculty, error)
	GetFacultyProfile(ctx context.Context, facultyID uint) (*models.Faculty, error)
	UpdateFacultyProfile(ctx context.Context, facultyID uint, req UpdateFacultyProfileRequest, imagePath string) (*models.Faculty, error)
}
