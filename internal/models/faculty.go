package models

import "time"

type Faculty struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null;size:100"`
	Department   string `json:"department" gorm:"not null;size:100;index"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	EmpID        string `json:"emp_id" gorm:"uniqueIndex;not null;size:50"`
	MobileNumber string `json:"mobile_number" gorm:"not null;size:15"`
	Position     string `json:"position" gorm:"not null;size:100"`
	BloodGroup   string `json:"blood_group" gorm:"size:5"`
	Gender       string `json:"gender" gorm:"size:10"`
	ProfileImage string `json:"profile_image" gorm:"size:500"`
	Password     string `json:"-" gorm:"not null;size:255"`

	// IsTG marks the faculty as a teacher guardian; students may only be
	// assigned to faculty with this flag set.
	IsTG bool `json:"is_tg" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Faculty) TableName() string {
	return "faculties"
}
