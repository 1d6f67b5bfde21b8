package models

import (
	"time"

	"gorm.io/datatypes"
)

// WorkingDays are the timetable day names, Monday through Saturday.
// Sunday is never scheduled and is skipped by attendance reporting.
var WorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// TimetablePeriod is one slot in a day: which course is taught by whom.
type TimetablePeriod struct {
	PeriodNumber int  `json:"period_number"` // 1 to 7
	CourseID     uint `json:"course_id"`
	FacultyID    uint `json:"faculty_id"`
}

type TimetableDay struct {
	Day     string            `json:"day"`
	Periods []TimetablePeriod `json:"periods"`
}

// Timetable is the weekly schedule for one (department, semester, section).
// The composite unique index keeps at most one record per scope.
type Timetable struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Department string   `json:"department" gorm:"not null;size:100;uniqueIndex:idx_timetable_scope"`
	Semester   Semester `json:"semester" gorm:"not null;size:8;uniqueIndex:idx_timetable_scope"`
	Section    string   `json:"section" gorm:"not null;size:10;uniqueIndex:idx_timetable_scope"`

	Week datatypes.JSONSlice[TimetableDay] `json:"week"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Timetable) TableName() string {
	return "timetables"
}
