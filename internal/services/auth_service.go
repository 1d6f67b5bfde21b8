package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
	"github.com/campus-erp/records-service/internal/validator"
)

// AuthServiceImpl authenticates callers against the per-role identity
// tables and issues tokens. Generated credentials are deterministic:
// admins and faculty start with bcrypt(email), students with bcrypt(urn).
type AuthServiceImpl struct {
	repo      repositories.Repository
	validator *validator.Validator
	tokens    *auth.TokenService
	logger    *slog.Logger
}

func NewAuthService(repo repositories.Repository, v *validator.Validator, tokens *auth.TokenService, logger *slog.Logger) AuthService {
	return &AuthServiceImpl{
		repo:      repo,
		validator: v,
		tokens:    tokens,
		logger:    logger,
	}
}

// LoginAdmin keeps the admin contract's status quirks: empty credentials
// answer with the nonstandard 490, an unknown email answers 404 and a bad
// password answers 403.
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, NewMissingCredentialsError("Invalid credentials.")
	}

	admin, err := s.repo.Admin().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("Invalid credentials.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	if !auth.CheckPassword(req.Password, admin.Password) {
		return nil, NewForbiddenError("Invalid Credentials.")
	}

	return s.issueToken(admin.ID, admin.Email, admin.Name, models.RoleAdmin)
}

func (s *AuthServiceImpl) LoginFaculty(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	faculty, err := s.repo.Faculty().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("Invalid email or password.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	if !auth.CheckPassword(req.Password, faculty.Password) {
		return nil, NewUnauthorizedError("Invalid email or password.")
	}

	return s.issueToken(faculty.ID, faculty.Email, faculty.Name, models.RoleFaculty)
}

func (s *AuthServiceImpl) LoginStudent(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, NewBadRequestError("Email and password are required.")
	}

	student, err := s.repo.Student().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("Invalid email or password.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	if !auth.CheckPassword(req.Password, student.Password) {
		return nil, NewUnauthorizedError("Invalid Credentials.")
	}

	return s.issueToken(student.ID, student.Email, student.Name, models.RoleStudent)
}

func (s *AuthServiceImpl) issueToken(id uint, email, name string, role models.UserRole) (*LoginResponse, error) {
	token, err := s.tokens.Issue(auth.Identity{ID: id, Email: email, Name: name, Role: role})
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return &LoginResponse{
		AuthToken: token,
		Name:      name,
		UserType:  role,
		ID:        id,
	}, nil
}

func (s *AuthServiceImpl) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*models.Admin, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	exists, err := s.repo.Admin().ExistsByEmailOrEmpID(ctx, req.Email, req.EmpID)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("User already exists in the database.")
	}

	hash, err := auth.HashPassword(req.Email)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	admin := &models.Admin{
		Name:       req.Name,
		Email:      req.Email,
		EmpID:      req.EmpID,
		Department: req.Department,
		Password:   hash,
	}
	if err := s.repo.Admin().Create(ctx, admin); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("User already exists in the database.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("admin registered", "emp_id", admin.EmpID, "department", admin.Department)
	return admin, nil
}

func (s *AuthServiceImpl) RegisterFaculty(ctx context.Context, req RegisterFacultyRequest) (*models.Faculty, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	exists, err := s.repo.Faculty().ExistsByEmailOrEmpID(ctx, req.Email, req.EmpID)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("Email or Employee ID already in database.")
	}

	hash, err := auth.HashPassword(req.Email)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	faculty := &models.Faculty{
		Name:         req.Name,
		Email:        req.Email,
		EmpID:        req.EmpID,
		Department:   req.Department,
		MobileNumber: req.MobileNumber,
		Position:     req.Position,
		BloodGroup:   req.BloodGroup,
		Gender:       req.Gender,
		Password:     hash,
	}
	if err := s.repo.Faculty().Create(ctx, faculty); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("Email or Employee ID already in database.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("faculty registered", "emp_id", faculty.EmpID, "department", faculty.Department)
	return faculty, nil
}

// RegisterStudent is the self-registration path; the initial credential is
// seeded from the URN, unlike admin enrollment which seeds from the email.
func (s *AuthServiceImpl) RegisterStudent(ctx context.Context, req RegisterStudentRequest) (*models.Student, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	exists, err := s.repo.Student().ExistsByEmailOrURN(ctx, req.Email, req.URN)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("URN or email already exists in the database.")
	}

	hash, err := auth.HashPassword(req.URN)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	student := &models.Student{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		URN:        req.URN,
		CRN:        req.CRN,
		Semester:   req.Semester,
		Section:    req.Section,
		Password:   hash,
	}
	if err := s.repo.Student().Create(ctx, student); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("URN or email already exists in the database.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("student registered", "urn", student.URN, "department", student.Department)
	return student, nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, caller auth.Identity, req ChangePasswordRequest) error {
	if verrs := s.validator.Validate(req); verrs != nil {
		return NewValidationError(verrs.Error())
	}

	switch caller.Role {
	case models.RoleAdmin:
		admin, err := s.repo.Admin().GetByID(ctx, caller.ID)
		if err != nil {
			return notFoundOrInternal(err, "Admin not found.")
		}
		hash, err := s.verifyAndHash(req, admin.Password)
		if err != nil {
			return err
		}
		admin.Password = hash
		if err := s.repo.Admin().Update(ctx, admin); err != nil {
			return NewInternalError("Internal server error.", err)
		}
	case models.RoleFaculty:
		faculty, err := s.repo.Faculty().GetByID(ctx, caller.ID)
		if err != nil {
			return notFoundOrInternal(err, "Faculty not found.")
		}
		hash, err := s.verifyAndHash(req, faculty.Password)
		if err != nil {
			return err
		}
		faculty.Password = hash
		if err := s.repo.Faculty().Update(ctx, faculty); err != nil {
			return NewInternalError("Internal server error.", err)
		}
	case models.RoleStudent:
		student, err := s.repo.Student().GetByID(ctx, caller.ID)
		if err != nil {
			return notFoundOrInternal(err, "Student not found.")
		}
		hash, err := s.verifyAndHash(req, student.Password)
		if err != nil {
			return err
		}
		student.Password = hash
		if err := s.repo.Student().Update(ctx, student); err != nil {
			return NewInternalError("Internal server error.", err)
		}
	default:
		return NewForbiddenError(fmt.Sprintf("Unknown user type %q.", caller.Role))
	}

	s.logger.Info("password changed", "role", caller.Role, "user_id", caller.ID)
	return nil
}

func (s *AuthServiceImpl) verifyAndHash(req ChangePasswordRequest, currentHash string) (string, error) {
	if !auth.CheckPassword(req.OldPassword, currentHash) {
		return "", NewUnauthorizedError("Invalid old password.")
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return "", NewInternalError("Internal server error.", err)
	}
	return hash, nil
}

func notFoundOrInternal(err error, message string) error {
	if repositories.IsNotFoundError(err) {
		return NewNotFoundError(message)
	}
	return NewInternalError("Internal server error.", err)
}
