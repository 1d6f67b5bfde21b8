package models

import "time"

type Admin struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null;size:100"`
	Email      string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	EmpID      string `json:"emp_id" gorm:"uniqueIndex;not null;size:50"`
	Department string `json:"department" gorm:"not null;size:100;index"`
	Password   string `json:"-" gorm:"not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}
