package models

// UserRole identifies which identity collection a token subject belongs to.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleFaculty UserRole = "faculty"
	RoleStudent UserRole = "student"
)

// Semester uses the roman numerals carried by every academic record.
type Semester string

const (
	SemesterI    Semester = "I"
	SemesterII   Semester = "II"
	SemesterIII  Semester = "III"
	SemesterIV   Semester = "IV"
	SemesterV    Semester = "V"
	SemesterVI   Semester = "VI"
	SemesterVII  Semester = "VII"
	SemesterVIII Semester = "VIII"
)
