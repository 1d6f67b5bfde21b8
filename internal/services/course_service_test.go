package services

import (
	"context"
	"testing"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/validator"
)

func TestCourseService_AddCourse(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewCourseService(repo, validator.New(), testLogger())

	req := AddCourseRequest{
		CourseCode:      "CS-301",
		CourseName:      "Operating Systems",
		CourseShortName: "OS",
		CourseType:      models.CourseCore,
		ClassType:       models.ClassTheory,
		Semester:        models.SemesterV,
	}

	t.Run("success", func(t *testing.T) {
		course, err := service.AddCourse(ctx, "CSE", req)
		if err != nil {
			t.Fatalf("add course failed: %v", err)
		}
		if course.Department != "CSE" {
			t.Errorf("expected department CSE, got %q", course.Department)
		}
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := service.AddCourse(ctx, "CSE", req)
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})
}

func TestCourseService_AssignAndRemoveFaculty(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	course := repo.addCourse(models.Course{
		CourseCode: "CS-301", CourseName: "Operating Systems", CourseShortName: "OS",
		CourseType: models.CourseCore, ClassType: models.ClassTheory,
		Department: "CSE", Semester: models.SemesterV,
	})
	faculty := repo.addFaculty(models.Faculty{
		Name: "Prof. Rao", Email: "rao@college.edu", EmpID: "F-201", Department: "CSE",
	})

	service := NewCourseService(repo, validator.New(), testLogger())

	t.Run("assign", func(t *testing.T) {
		updated, err := service.AssignFaculty(ctx, course.ID, faculty.ID)
		if err != nil {
			t.Fatalf("assign failed: %v", err)
		}
		if len(updated.TakenBy) != 1 {
			t.Fatalf("expected 1 takenBy entry, got %d", len(updated.TakenBy))
		}
		if updated.TakenBy[0].FacultyName != "Prof. Rao" {
			t.Errorf("expected name snapshot, got %q", updated.TakenBy[0].FacultyName)
		}
	})

	t.Run("assign twice", func(t *testing.T) {
		_, err := service.AssignFaculty(ctx, course.ID, faculty.ID)
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})

	t.Run("unknown faculty", func(t *testing.T) {
		_, err := service.AssignFaculty(ctx, course.ID, 9999)
		if CodeOf(err) != ErrCodeNotFound {
			t.Fatalf("expected not found error, got %v", err)
		}
	})

	t.Run("faculties by course", func(t *testing.T) {
		refs, err := service.GetFacultiesByCourse(ctx, course.ID)
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if len(refs) != 1 || refs[0].FacultyID != faculty.ID {
			t.Errorf("unexpected refs %+v", refs)
		}
	})

	t.Run("remove", func(t *testing.T) {
		updated, err := service.RemoveFaculty(ctx, course.ID, faculty.ID)
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if len(updated.TakenBy) != 0 {
			t.Errorf("expected empty takenBy, got %d entries", len(updated.TakenBy))
		}
	})

	t.Run("remove unassigned", func(t *testing.T) {
		_, err := service.RemoveFaculty(ctx, course.ID, faculty.ID)
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})
}
