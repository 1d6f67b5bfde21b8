package models

import (
	"time"

	"gorm.io/datatypes"
)

// TGRef is the denormalized teacher-guardian snapshot stored on a student.
// The name is copied at assignment time and is not refreshed when the
// faculty record changes.
type TGRef struct {
	FacultyID   uint   `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
}

type Student struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Name       string   `json:"name" gorm:"not null;size:100;index"`
	Department string   `json:"department" gorm:"not null;size:100;index"`
	Email      string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	URN        string   `json:"urn" gorm:"uniqueIndex;not null;size:50"`
	CRN        string   `json:"crn" gorm:"size:50"`
	Semester   Semester `json:"semester" gorm:"not null;size:8"`
	Section    string   `json:"section" gorm:"not null;size:10"`
	Password   string   `json:"-" gorm:"not null;size:255"`

	IsDetailsFilled bool `json:"is_details_filled" gorm:"default:false"`
	IsVerified      bool `json:"is_verified" gorm:"default:false"`

	TG *TGRef `json:"tg,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// GuardianContact is one parent/guardian entry inside the details record.
type GuardianContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	MobileNumber string `json:"mobile_number"`
}

type GuardianDetails struct {
	Mother            GuardianContact  `json:"mother"`
	Father            GuardianContact  `json:"father"`
	AlternateGuardian *GuardianContact `json:"alternate_guardian,omitempty"`
}

type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	PinCode string `json:"pin_code"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relation     string `json:"relation,omitempty"`
	MobileNumber string `json:"mobile_number"`
}

type Achievement struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// StudentDetails holds the comprehensive profile a student fills in once
// after first login; Student.IsDetailsFilled flips when it is created.
type StudentDetails struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	StudentID  uint   `json:"student_id" gorm:"uniqueIndex;not null"`
	StudentURN string `json:"student_urn" gorm:"uniqueIndex;not null;size:50"`

	DOB          time.Time `json:"dob" gorm:"not null"`
	BloodGroup   string    `json:"blood_group" gorm:"not null;size:5"`
	Gender       string    `json:"gender" gorm:"not null;size:10"`
	Nationality  string    `json:"nationality" gorm:"size:50;default:Indian"`
	MobileNumber string    `json:"mobile_number" gorm:"not null;size:15"`

	Guardians        datatypes.JSONType[GuardianDetails]  `json:"guardians"`
	PermanentAddress datatypes.JSONType[Address]          `json:"permanent_address"`
	CurrentAddress   datatypes.JSONType[Address]          `json:"current_address"`
	EmergencyContact datatypes.JSONType[EmergencyContact] `json:"emergency_contact"`
	Achievements     datatypes.JSONSlice[Achievement]     `json:"achievements"`

	AadharNumber    string `json:"aadhar_number" gorm:"uniqueIndex;size:12"`
	Category        string `json:"category" gorm:"not null;size:10"`
	AdmissionNumber string `json:"admission_number" gorm:"uniqueIndex;not null;size:50"`
	ABCID           string `json:"abc_id" gorm:"size:50"`
	ProfilePhoto    string `json:"profile_photo" gorm:"not null;size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentDetails) TableName() string {
	return "student_details"
}
