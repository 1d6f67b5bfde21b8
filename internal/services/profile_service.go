package services

import (
	"context"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
	"github.com/campus-erp/records-service/internal/uploads"
	"github.com/campus-erp/records-service/internal/validator"
)

// ProfileServiceImpl covers student self-service details, faculty profile
// maintenance and the admin student search.
type ProfileServiceImpl struct {
	repo      repositories.Repository
	validator *validator.Validator
	uploader  uploads.Uploader
	logger    *slog.Logger
}

func NewProfileService(repo repositories.Repository, v *validator.Validator, uploader uploads.Uploader, logger *slog.Logger) ProfileService {
	return &ProfileServiceImpl{
		repo:      repo,
		validator: v,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *ProfileServiceImpl) GetAdmin(ctx context.Context, adminID uint) (*models.Admin, error) {
	admin, err := s.repo.Admin().GetByID(ctx, adminID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Admin not found.")
	}
	return admin, nil
}

func guardianContact(req validator.GuardianContactRequest) models.GuardianContact {
	return models.GuardianContact{
		Name:         req.Name,
		Relationship: req.Relationship,
		MobileNumber: req.MobileNumber,
	}
}

func address(req validator.AddressRequest) models.Address {
	return models.Address{
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		PinCode: req.PinCode,
	}
}

func applyDetails(details *models.StudentDetails, req StudentDetailsRequest) {
	details.DOB = req.DOB
	details.BloodGroup = req.BloodGroup
	details.Gender = req.Gender
	if req.Nationality != "" {
		details.Nationality = req.Nationality
	}
	details.MobileNumber = req.MobileNumber

	guardians := models.GuardianDetails{
		Mother: guardianContact(req.Mother),
		Father: guardianContact(req.Father),
	}
	if req.AlternateGuardian != nil {
		alt := guardianContact(*req.AlternateGuardian)
		guardians.AlternateGuardian = &alt
	}
	details.Guardians = datatypes.NewJSONType(guardians)

	details.PermanentAddress = datatypes.NewJSONType(address(req.PermanentAddress))
	current := req.PermanentAddress
	if req.CurrentAddress != nil {
		current = *req.CurrentAddress
	}
	details.CurrentAddress = datatypes.NewJSONType(address(current))

	details.EmergencyContact = datatypes.NewJSONType(models.EmergencyContact{
		Name:         req.EmergencyContactName,
		MobileNumber: req.EmergencyContactMobile,
	})

	details.AadharNumber = req.AadharNumber
	details.Category = req.Category
	details.AdmissionNumber = req.AdmissionNumber
	details.ABCID = req.ABCID
	details.ProfilePhoto = req.ProfilePhoto
}

// AddStudentDetails creates the one-time details record and flips the
// student's isDetailsFilled flag in the same transaction.
func (s *ProfileServiceImpl) AddStudentDetails(ctx context.Context, caller auth.Identity, req StudentDetailsRequest) (*models.StudentDetails, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	student, err := s.repo.Student().GetByID(ctx, caller.ID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Student not found.")
	}

	filled, err := s.repo.StudentDetails().ExistsByStudentID(ctx, student.ID)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if filled {
		return nil, NewConflictError("Details already filled.")
	}

	details := &models.StudentDetails{
		StudentID:  student.ID,
		StudentURN: student.URN,
	}
	applyDetails(details, req)

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.StudentDetails().Create(ctx, details); err != nil {
			if repositories.IsDuplicateError(err) {
				return NewConflictError("Details already filled.")
			}
			return NewInternalError("Internal server error.", err)
		}
		student.IsDetailsFilled = true
		if err := tx.Student().Update(ctx, student); err != nil {
			return NewInternalError("Internal server error.", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("student details added", "student_id", student.ID)
	return details, nil
}

func (s *ProfileServiceImpl) GetStudentDetails(ctx context.Context, studentID uint) (*models.StudentDetails, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		return nil, notFoundOrInternal(err, "Student not found.")
	}

	details, err := s.repo.StudentDetails().GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Details not found.")
	}
	return details, nil
}

func (s *ProfileServiceImpl) GetBasicDetails(ctx context.Context, studentID uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Details not found.")
	}
	return student, nil
}

func (s *ProfileServiceImpl) UpdateStudentDetails(ctx context.Context, studentID uint, req StudentDetailsRequest) (*models.StudentDetails, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	details, err := s.repo.StudentDetails().GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Student details not found.")
	}

	applyDetails(details, req)
	if err := s.repo.StudentDetails().Update(ctx, details); err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("student details updated", "student_id", studentID)
	return details, nil
}

func (s *ProfileServiceImpl) SearchStudents(ctx context.Context, query SearchStudentQuery) ([]models.Student, error) {
	if verrs := s.validator.Validate(query); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	students, err := s.repo.Student().Search(ctx, repositories.StudentSearchFilters{
		SearchString: query.SearchString,
		Semester:     query.Semester,
		Section:      query.Section,
	})
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if len(students) == 0 {
		return nil, NewNotFoundError("No students found.")
	}
	return students, nil
}

func (s *ProfileServiceImpl) ListStudentsByDepartment(ctx context.Context, department string) ([]models.Student, error) {
	students, err := s.repo.Student().ListByDepartment(ctx, department)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return students, nil
}

func (s *ProfileServiceImpl) ListFacultyByDepartment(ctx context.Context, department string) ([]models.Faculty, error) {
	faculties, err := s.repo.Faculty().ListByDepartment(ctx, department)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return faculties, nil
}

func (s *ProfileServiceImpl) GetFacultyProfile(ctx context.Context, facultyID uint) (*models.Faculty, error) {
	faculty, err := s.repo.Faculty().GetByID(ctx, facultyID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Faculty not found.")
	}
	return faculty, nil
}

// UpdateFacultyProfile applies the provided fields, checking natural-key
// conflicts against other faculty before writing. imagePath, when not
// empty, is uploaded and becomes the new profile image.
func (s *ProfileServiceImpl) UpdateFacultyProfile(ctx context.Context, facultyID uint, req UpdateFacultyProfileRequest, imagePath string) (*models.Faculty, error) {
	defer uploads.RemoveFile(imagePath)

	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	faculty, err := s.repo.Faculty().GetByID(ctx, facultyID)
	if err != nil {
		return nil, notFoundOrInternal(err, "No Faculty found.")
	}

	// Conflict checks only for keys that actually change.
	var checkEmail, checkEmpID string
	if req.Email != nil && *req.Email != faculty.Email {
		checkEmail = *req.Email
	}
	if req.EmpID != nil && *req.EmpID != faculty.EmpID {
		checkEmpID = *req.EmpID
	}
	if checkEmail != "" || checkEmpID != "" {
		conflict, err := s.repo.Faculty().FindConflict(ctx, checkEmail, checkEmpID, faculty.ID)
		if err == nil && conflict != nil {
			if checkEmpID != "" && conflict.EmpID == checkEmpID {
				return nil, NewConflictError("Employee ID already exists.")
			}
			return nil, NewConflictError("Email already exists.")
		}
		if err != nil && !repositories.IsNotFoundError(err) {
			return nil, NewInternalError("Internal server error.", err)
		}
	}

	if req.Name != nil {
		faculty.Name = *req.Name
	}
	if req.Email != nil {
		faculty.Email = *req.Email
	}
	if req.EmpID != nil {
		faculty.EmpID = *req.EmpID
	}
	if req.MobileNumber != nil {
		faculty.MobileNumber = *req.MobileNumber
	}
	if req.Position != nil {
		faculty.Position = *req.Position
	}
	if req.BloodGroup != nil {
		faculty.BloodGroup = *req.BloodGroup
	}

	if imagePath != "" {
		result, err := s.uploader.UploadFile(imagePath, "image")
		if err != nil {
			return nil, NewInternalError("Internal server error.", err)
		}
		faculty.ProfileImage = result.SecureURL
	}

	if err := s.repo.Faculty().Update(ctx, faculty); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("Email already exists.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("faculty profile updated", "faculty_id", facultyID)
	return faculty, nil
}
