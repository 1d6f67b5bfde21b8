package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens() *auth.TokenService {
	return auth.NewTokenService("test-signing-secret", "records-service-test", time.Hour)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := auth.HashPassword(plain)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return hash
}

func TestAuthService_LoginAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.addAdmin(models.Admin{
		Name:       "Dean Office",
		Email:      "dean@college.edu",
		EmpID:      "A-100",
		Department: "CSE",
		Password:   mustHash(t, "secret-pass"),
	})

	service := NewAuthService(repo, validator.New(), testTokens(), testLogger())

	t.Run("empty credentials", func(t *testing.T) {
		_, err := service.LoginAdmin(ctx, LoginRequest{})
		if CodeOf(err) != ErrCodeMissingCredentials {
			t.Fatalf("expected missing credentials error, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.LoginAdmin(ctx, LoginRequest{Email: "nobody@college.edu", Password: "x"})
		if CodeOf(err) != ErrCodeNotFound {
			t.Fatalf("expected not found error, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.LoginAdmin(ctx, LoginRequest{Email: "dean@college.edu", Password: "wrong"})
		if CodeOf(err) != ErrCodeForbidden {
			t.Fatalf("expected forbidden error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		resp, err := service.LoginAdmin(ctx, LoginRequest{Email: "dean@college.edu", Password: "secret-pass"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if resp.AuthToken == "" {
			t.Error("expected a token")
		}
		if resp.UserType != models.RoleAdmin {
			t.Errorf("expected role admin, got %s", resp.UserType)
		}
		if resp.Name != "Dean Office" {
			t.Errorf("unexpected name %q", resp.Name)
		}
	})
}

func TestAuthService_LoginStudent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.addStudent(models.Student{
		Name:       "Asha",
		Email:      "asha@college.edu",
		URN:        "2203456",
		Department: "CSE",
		Semester:   models.SemesterIII,
		Section:    "A",
		Password:   mustHash(t, "2203456"),
	})

	service := NewAuthService(repo, validator.New(), testTokens(), testLogger())

	t.Run("empty credentials", func(t *testing.T) {
		_, err := service.LoginStudent(ctx, LoginRequest{Email: "asha@college.edu"})
		if CodeOf(err) != ErrCodeBadRequest {
			t.Fatalf("expected bad request error, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.LoginStudent(ctx, LoginRequest{Email: "asha@college.edu", Password: "nope"})
		if CodeOf(err) != ErrCodeUnauthorized {
			t.Fatalf("expected unauthorized error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		resp, err := service.LoginStudent(ctx, LoginRequest{Email: "asha@college.edu", Password: "2203456"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if resp.UserType != models.RoleStudent {
			t.Errorf("expected role student, got %s", resp.UserType)
		}
	})
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewAuthService(repo, validator.New(), testTokens(), testLogger())

	req := RegisterAdminRequest{
		Name:       "Dean Office",
		Email:      "dean@college.edu",
		EmpID:      "A-100",
		Department: "CSE",
	}

	t.Run("success seeds credential from email", func(t *testing.T) {
		admin, err := service.RegisterAdmin(ctx, req)
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if !auth.CheckPassword(req.Email, admin.Password) {
			t.Error("initial password should verify against the email")
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := service.RegisterAdmin(ctx, req)
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		bad := req
		bad.Email = "not-an-email"
		_, err := service.RegisterAdmin(ctx, bad)
		if CodeOf(err) != ErrCodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestAuthService_RegisterStudent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewAuthService(repo, validator.New(), testTokens(), testLogger())

	req := RegisterStudentRequest{
		Name:       "Asha",
		Email:      "asha@college.edu",
		Department: "CSE",
		URN:        "2203456",
		CRN:        "109",
		Semester:   models.SemesterIII,
		Section:    "A",
	}

	t.Run("success seeds credential from urn", func(t *testing.T) {
		student, err := service.RegisterStudent(ctx, req)
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if !auth.CheckPassword(req.URN, student.Password) {
			t.Error("initial password should verify against the urn")
		}
	})

	t.Run("duplicate urn", func(t *testing.T) {
		dup := req
		dup.Email = "other@college.edu"
		_, err := service.RegisterStudent(ctx, dup)
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	faculty := repo.addFaculty(models.Faculty{
		Name:       "Prof. Rao",
		Email:      "rao@college.edu",
		EmpID:      "F-201",
		Department: "CSE",
		Password:   mustHash(t, "old-password"),
	})

	service := NewAuthService(repo, validator.New(), testTokens(), testLogger())
	caller := auth.Identity{ID: faculty.ID, Role: models.RoleFaculty}

	t.Run("wrong old password", func(t *testing.T) {
		err := service.ChangePassword(ctx, caller, ChangePasswordRequest{
			OldPassword: "wrong", NewPassword: "brand-new-pass",
		})
		if CodeOf(err) != ErrCodeUnauthorized {
			t.Fatalf("expected unauthorized error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		err := service.ChangePassword(ctx, caller, ChangePasswordRequest{
			OldPassword: "old-password", NewPassword: "brand-new-pass",
		})
		if err != nil {
			t.Fatalf("change password failed: %v", err)
		}

		updated, err2 := repo.Faculty().GetByID(ctx, faculty.ID)
		if err2 != nil {
			t.Fatalf("fetch failed: %v", err2)
		}
		if !auth.CheckPassword("brand-new-pass", updated.Password) {
			t.Error("new password should verify after rotation")
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		err := service.ChangePassword(ctx, auth.Identity{ID: 1, Role: "visitor"}, ChangePasswordRequest{
			OldPassword: "x", NewPassword: "long-enough-pw",
		})
		if CodeOf(err) != ErrCodeForbidden {
			t.Fatalf("expected forbidden error, got %v", err)
		}
	})
}
