package validator

import (
	"time"

	"github.com/campus-erp/records-service/internal/models"
)

// ===== AUTH =====

// LoginRequest is shared by all three roles. Emptiness is checked by the
// auth service because the admin flow answers with a different status code.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterAdminRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	EmpID      string `json:"emp_id" validate:"required,max=50"`
	Department string `json:"department" validate:"required,max=100"`
}

type RegisterFacultyRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	EmpID        string `json:"emp_id" validate:"required,max=50"`
	Department   string `json:"department" validate:"required,max=100"`
	MobileNumber string `json:"mobile_number" validate:"required,mobile10"`
	Position     string `json:"position" validate:"required,max=100"`
	BloodGroup   string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
	Gender       string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type RegisterStudentRequest struct {
	Name       string          `json:"name" validate:"required,max=100"`
	Email      string          `json:"email" validate:"required,email"`
	Department string          `json:"department" validate:"required,max=100"`
	URN        string          `json:"urn" validate:"required,max=50"`
	CRN        string          `json:"crn" validate:"required,max=50"`
	Semester   models.Semester `json:"semester" validate:"required,semester"`
	Section    string          `json:"section" validate:"required,max=10"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ===== ENROLLMENT =====

// StudentCandidate is one row of a bulk student enrollment batch.
// Candidates missing either natural key are dropped, not rejected.
type StudentCandidate struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	URN      string          `json:"urn"`
	CRN      string          `json:"crn"`
	Semester models.Semester `json:"semester"`
	Section  string          `json:"section"`
}

// FacultyCandidate is one row of a bulk faculty enrollment batch.
type FacultyCandidate struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	EmpID        string `json:"emp_id"`
	MobileNumber string `json:"mobile_number"`
	Position     string `json:"position"`
}

type EnrollStudentRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	URN      string          `json:"urn" validate:"required,max=50"`
	CRN      string          `json:"crn" validate:"omitempty,max=50"`
	Semester models.Semester `json:"semester" validate:"required,semester"`
	Section  string          `json:"section" validate:"required,max=10"`
}

type EnrollFacultyRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	EmpID        string `json:"emp_id" validate:"required,max=50"`
	MobileNumber string `json:"mobile_number" validate:"required,mobile10"`
	Position     string `json:"position" validate:"required,max=100"`
}

// ===== COURSES =====

type AddCourseRequest struct {
	CourseCode      string            `json:"course_code" validate:"required,max=50"`
	CourseName      string            `json:"course_name" validate:"required,max=200"`
	CourseShortName string            `json:"course_short_name" validate:"required,max=50"`
	CourseType      models.CourseType `json:"course_type" validate:"required,oneof='First Year Subject' 'Core Subject' 'Prof. Elective' 'Open Elective'"`
	ClassType       models.ClassType  `json:"class_type" validate:"required,oneof=Lab Theory"`
	Semester        models.Semester   `json:"semester" validate:"required,semester"`
}

// ===== TG =====

type AssignStudentsToTGRequest struct {
	StudentIDs []uint `json:"student_ids" validate:"required,min=1,dive,required"`
}

// ===== TIMETABLE & ATTENDANCE =====

type TimetablePeriodRequest struct {
	PeriodNumber int  `json:"period_number" validate:"required,min=1,max=7"`
	CourseID     uint `json:"course_id" validate:"required"`
	FacultyID    uint `json:"faculty_id" validate:"required"`
}

type TimetableDayRequest struct {
	Day     string                   `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	Periods []TimetablePeriodRequest `json:"periods" validate:"required,dive"`
}

type UpsertTimetableRequest struct {
	Semester models.Semester       `json:"semester" validate:"required,semester"`
	Section  string                `json:"section" validate:"required,max=10"`
	Week     []TimetableDayRequest `json:"week" validate:"required,min=1,max=6,dive"`
}

type StudentMarkRequest struct {
	StudentID uint                    `json:"student_id" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=Present Absent Leave BOA"`
}

type MarkAttendanceRequest struct {
	CourseID     uint                 `json:"course_id" validate:"required"`
	Semester     models.Semester      `json:"semester" validate:"required,semester"`
	Section      string               `json:"section" validate:"required,max=10"`
	Date         time.Time            `json:"date" validate:"required"`
	PeriodNumber int                  `json:"period_number" validate:"required,min=1,max=7"`
	Students     []StudentMarkRequest `json:"students" validate:"required,min=1,dive"`
}

// ===== PUBLISHING =====

type PublishNoticeRequest struct {
	NoticeNumber      string `json:"notice_number" form:"notice_number" validate:"required,max=50"`
	NoticeSubject     string `json:"notice_subject" form:"notice_subject" validate:"required,max=255"`
	NoticeDescription string `json:"notice_description" form:"notice_description" validate:"omitempty,max=2000"`
}

type AddAssignmentRequest struct {
	AssignmentID string          `json:"assignment_id" form:"assignment_id" validate:"required,max=50"`
	Subject      string          `json:"subject" form:"subject" validate:"required,max=255"`
	Description  string          `json:"description" form:"description" validate:"omitempty,max=2000"`
	CourseID     uint            `json:"course_id" form:"course_id" validate:"omitempty"`
	Semester     models.Semester `json:"semester" form:"semester" validate:"omitempty,semester"`
	Section      string          `json:"section" form:"section" validate:"omitempty,max=10"`
	DueDate      *time.Time      `json:"due_date" form:"due_date"`
}

type UploadPYQRequest struct {
	CourseCode  string `json:"course_code" form:"course_code" validate:"required,max=50"`
	ExamSession string `json:"exam_session" form:"exam_session" validate:"required,max=50"`
	ExamType    string `json:"exam_type" form:"exam_type" validate:"required,max=50"`
}

// ===== PROFILES =====

type GuardianContactRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Relationship string `json:"relationship" validate:"omitempty,max=50"`
	MobileNumber string `json:"mobile_number" validate:"required,mobile10"`
}

type AddressRequest struct {
	Address string `json:"address" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	PinCode string `json:"pin_code" validate:"required,len=6"`
}

type StudentDetailsRequest struct {
	DOB          time.Time `json:"dob" validate:"required"`
	BloodGroup   string    `json:"blood_group" validate:"required,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
	Gender       string    `json:"gender" validate:"required,oneof=male female other"`
	Nationality  string    `json:"nationality" validate:"omitempty,max=50"`
	MobileNumber string    `json:"mobile_number" validate:"required,mobile10"`

	Mother            GuardianContactRequest  `json:"mother" validate:"required"`
	Father            GuardianContactRequest  `json:"father" validate:"required"`
	AlternateGuardian *GuardianContactRequest `json:"alternate_guardian"`

	PermanentAddress AddressRequest  `json:"permanent_address" validate:"required"`
	CurrentAddress   *AddressRequest `json:"current_address"`

	AadharNumber    string `json:"aadhar_number" validate:"omitempty,len=12"`
	Category        string `json:"category" validate:"required,oneof=GEN OBC ST SC EWS"`
	AdmissionNumber string `json:"admission_number" validate:"required,max=50"`
	ABCID           string `json:"abc_id" validate:"omitempty,max=50"`
	ProfilePhoto    string `json:"profile_photo" validate:"required,max=500"`

	EmergencyContactName   string `json:"emergency_contact_name" validate:"required,max=100"`
	EmergencyContactMobile string `json:"emergency_contact_mobile" validate:"required,mobile10"`
}

type UpdateFacultyProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	EmpID        *string `json:"emp_id" validate:"omitempty,max=50"`
	MobileNumber *string `json:"mobile_number" validate:"omitempty,mobile10"`
	Position     *string `json:"position" validate:"omitempty,max=100"`
	BloodGroup   *string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
}

// SearchStudentQuery filters the admin student search; all fields optional.
type SearchStudentQuery struct {
	SearchString string          `json:"search_string" form:"search_string"`
	Semester     models.Semester `json:"semester" form:"semester" validate:"omitempty,semester"`
	Section      string          `json:"section" form:"section" validate:"omitempty,max=10"`
}
