package models

import "time"

// AuthorRef is the author snapshot embedded in published records.
type AuthorRef struct {
	UserType UserRole `json:"user_type"`
	UserID   uint     `json:"user_id"`
	UserName string   `json:"user_name"`
}

type Notice struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	NoticeNumber      string    `json:"notice_number" gorm:"uniqueIndex;not null;size:50"`
	NoticeSubject     string    `json:"notice_subject" gorm:"not null;size:255"`
	NoticeDescription string    `json:"notice_description" gorm:"type:text"`
	Author            AuthorRef `json:"author" gorm:"serializer:json"`
	PDFURL            string    `json:"pdf_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Notice) TableName() string {
	return "notices"
}

type Assignment struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AssignmentID string    `json:"assignment_id" gorm:"uniqueIndex;not null;size:50"`
	Subject      string    `json:"subject" gorm:"not null;size:255"`
	Description  string    `json:"description" gorm:"type:text"`
	CourseID     uint      `json:"course_id" gorm:"index"`
	Semester     Semester  `json:"semester" gorm:"size:8"`
	Section      string    `json:"section" gorm:"size:10"`
	DueDate      *time.Time `json:"due_date"`
	Author       AuthorRef `json:"author" gorm:"serializer:json"`
	FileURL      string    `json:"file_url" gorm:"not null;size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// PYQ is a previous-year-question archive attached to a course.
type PYQ struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CourseID    uint   `json:"course_id" gorm:"not null;index:idx_pyq_exam"`
	AuthorID    uint   `json:"author_id" gorm:"not null"`
	ExamSession string `json:"exam_session" gorm:"not null;size:50;index:idx_pyq_exam"`
	ExamType    string `json:"exam_type" gorm:"not null;size:50;index:idx_pyq_exam"`
	PDFURL      string `json:"pdf_url" gorm:"not null;size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PYQ) TableName() string {
	return "pyqs"
}
