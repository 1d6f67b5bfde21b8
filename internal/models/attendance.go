package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLeave   AttendanceStatus = "Leave"
	StatusBOA     AttendanceStatus = "BOA"
)

// StudentMark is one student's status within an attendance record.
type StudentMark struct {
	StudentID uint             `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
}

// Attendance is one taught session: a (course, faculty, date, period) slot
// with the per-student marks for the section. Uniqueness of the slot is
// guarded by an existence pre-check before creation, not a database
// constraint.
type Attendance struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CourseID     uint      `json:"course_id" gorm:"not null;index:idx_attendance_slot"`
	FacultyID    uint      `json:"faculty_id" gorm:"not null;index:idx_attendance_slot"`
	Department   string    `json:"department" gorm:"not null;size:100"`
	Semester     Semester  `json:"semester" gorm:"not null;size:8"`
	Section      string    `json:"section" gorm:"not null;size:10"`
	Date         time.Time `json:"date" gorm:"not null;type:date;index:idx_attendance_slot"`
	PeriodNumber int       `json:"period_number" gorm:"not null;index:idx_attendance_slot"`

	Students datatypes.JSONSlice[StudentMark] `json:"students"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
