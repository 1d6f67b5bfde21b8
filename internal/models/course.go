package models

import (
	"time"

	"gorm.io/datatypes"
)

type CourseType string

const (
	CourseFirstYear    CourseType = "First Year Subject"
	CourseCore         CourseType = "Core Subject"
	CourseProfElective CourseType = "Prof. Elective"
	CourseOpenElective CourseType = "Open Elective"
)

type ClassType string

const (
	ClassLab    ClassType = "Lab"
	ClassTheory ClassType = "Theory"
)

// FacultyRef is one takenBy entry: a snapshot of the assigned faculty.
type FacultyRef struct {
	FacultyID   uint   `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
}

type Course struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	CourseCode      string     `json:"course_code" gorm:"uniqueIndex;not null;size:50"`
	CourseName      string     `json:"course_name" gorm:"not null;size:200"`
	CourseShortName string     `json:"course_short_name" gorm:"not null;size:50"`
	CourseType      CourseType `json:"course_type" gorm:"not null;size:50"`
	ClassType       ClassType  `json:"class_type" gorm:"not null;size:10"`
	Department      string     `json:"department" gorm:"not null;size:100;index"`
	Semester        Semester   `json:"semester" gorm:"not null;size:8"`

	// TakenBy lists the faculty currently teaching the course. Invariant:
	// each faculty id appears at most once.
	TakenBy datatypes.JSONSlice[FacultyRef] `json:"taken_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// Teaches reports whether the faculty id is present in TakenBy.
func (c *Course) Teaches(facultyID uint) bool {
	for _, ref := range c.TakenBy {
		if ref.FacultyID == facultyID {
			return true
		}
	}
	return false
}
