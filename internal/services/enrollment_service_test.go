package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/events"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/validator"
)

func newEnrollmentService(repo *fakeRepository) (EnrollmentService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	return NewEnrollmentService(repo, validator.New(), publisher, testLogger()), publisher
}

func TestEnrollmentService_EnrollStudents(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch", func(t *testing.T) {
		service, _ := newEnrollmentService(newFakeRepository())
		_, err := service.EnrollStudents(ctx, "CSE", nil)
		if CodeOf(err) != ErrCodeBadRequest {
			t.Fatalf("expected bad request error, got %v", err)
		}
	})

	t.Run("all candidates missing keys", func(t *testing.T) {
		service, _ := newEnrollmentService(newFakeRepository())
		batch := []StudentCandidate{
			{Name: "No Email", URN: "2201111"},
			{Name: "No URN", Email: "nourn@college.edu"},
		}
		_, err := service.EnrollStudents(ctx, "CSE", batch)
		if CodeOf(err) != ErrCodeBadRequest {
			t.Fatalf("expected bad request error, got %v", err)
		}
	})

	t.Run("partitions new, existing and invalid", func(t *testing.T) {
		repo := newFakeRepository()
		repo.addStudent(models.Student{
			Name: "Existing", Email: "existing@college.edu", URN: "2200001",
			Department: "CSE", Semester: models.SemesterIII, Section: "A",
		})

		service, publisher := newEnrollmentService(repo)
		batch := []StudentCandidate{
			{Name: "Existing", Email: "existing@college.edu", URN: "2200001", Semester: models.SemesterIII, Section: "A"},
			{Name: "Fresh One", Email: "fresh1@college.edu", URN: "2200002", Semester: models.SemesterIII, Section: "A"},
			{Name: "Fresh Two", Email: "fresh2@college.edu", URN: "2200003", Semester: models.SemesterIII, Section: "B"},
			{Name: "Missing Key", URN: "2200004"},
		}

		result, err := service.EnrollStudents(ctx, "CSE", batch)
		if err != nil {
			t.Fatalf("enrollment failed: %v", err)
		}
		if result.Added != 2 {
			t.Errorf("expected 2 added, got %d", result.Added)
		}
		if result.Failed != 2 {
			t.Errorf("expected 2 failed, got %d", result.Failed)
		}
		if result.Total != 4 {
			t.Errorf("expected total 4, got %d", result.Total)
		}

		students, _ := repo.Student().ListByDepartment(ctx, "CSE")
		if len(students) != 3 {
			t.Errorf("expected 3 stored students, got %d", len(students))
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 published event, got %d", len(published))
		}
		if published[0].Topic != events.TopicEnrollmentCompleted {
			t.Errorf("unexpected topic %q", published[0].Topic)
		}
	})

	t.Run("repeated key within the batch counts as failed", func(t *testing.T) {
		repo := newFakeRepository()
		service, _ := newEnrollmentService(repo)

		batch := []StudentCandidate{
			{Name: "First", Email: "dup@college.edu", URN: "2210001", Semester: models.SemesterIII, Section: "A"},
			{Name: "Repeat", Email: "dup@college.edu", URN: "2210002", Semester: models.SemesterIII, Section: "A"},
			{Name: "Fresh", Email: "fresh3@college.edu", URN: "2210003", Semester: models.SemesterIII, Section: "B"},
		}

		result, err := service.EnrollStudents(ctx, "CSE", batch)
		if err != nil {
			t.Fatalf("enrollment failed: %v", err)
		}
		if result.Added != 2 {
			t.Errorf("expected 2 added, got %d", result.Added)
		}
		if result.Failed != 1 {
			t.Errorf("expected 1 failed, got %d", result.Failed)
		}

		students, _ := repo.Student().ListByDepartment(ctx, "CSE")
		if len(students) != 2 {
			t.Errorf("expected 2 stored students, got %d", len(students))
		}
		if _, err := repo.Student().GetByEmail(ctx, "fresh3@college.edu"); err != nil {
			t.Errorf("fresh candidate should be enrolled despite the duplicate: %v", err)
		}
	})

	t.Run("new students get email-seeded credentials", func(t *testing.T) {
		repo := newFakeRepository()
		service, _ := newEnrollmentService(repo)

		_, err := service.EnrollStudents(ctx, "CSE", []StudentCandidate{
			{Name: "Fresh", Email: "fresh@college.edu", URN: "2209999", Semester: models.SemesterI, Section: "A"},
		})
		if err != nil {
			t.Fatalf("enrollment failed: %v", err)
		}

		student, err := repo.Student().GetByEmail(ctx, "fresh@college.edu")
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if !auth.CheckPassword("fresh@college.edu", student.Password) {
			t.Error("seeded password should verify against the email")
		}
	})
}

func TestEnrollmentService_EnrollFaculty(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.addFaculty(models.Faculty{
		Name: "Existing", Email: "prof@college.edu", EmpID: "F-001", Department: "CSE",
	})

	service, _ := newEnrollmentService(repo)
	batch := []FacultyCandidate{
		{Name: "Existing", Email: "prof@college.edu", EmpID: "F-001"},
		{Name: "New Prof", Email: "newprof@college.edu", EmpID: "F-002", MobileNumber: "9876543210", Position: "Assistant Professor"},
	}

	result, err := service.EnrollFaculty(ctx, "CSE", batch)
	if err != nil {
		t.Fatalf("enrollment failed: %v", err)
	}
	if result.Added != 1 || result.Failed != 1 {
		t.Errorf("expected 1 added and 1 failed, got %d/%d", result.Added, result.Failed)
	}
}

func TestEnrollmentService_EnrollStudent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, _ := newEnrollmentService(repo)

	req := EnrollStudentRequest{
		Name:     "Asha",
		Email:    "asha@college.edu",
		URN:      "2203456",
		Semester: models.SemesterIII,
		Section:  "A",
	}

	if _, err := service.EnrollStudent(ctx, "CSE", req); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	_, err := service.EnrollStudent(ctx, "CSE", req)
	if CodeOf(err) != ErrCodeConflict {
		t.Fatalf("expected conflict on re-enroll, got %v", err)
	}
}

func TestEnrollmentService_ImportStudentRoster(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, _ := newEnrollmentService(repo)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Email", "URN", "CRN", "Semester", "Section"},
		{"Asha", "asha@college.edu", "2203456", "109", "III", "A"},
		{"Ravi", "ravi@college.edu", "2203457", "110", "III", "A"},
		{"Broken", "", "2203458", "111", "III", "A"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	result, err := service.ImportStudentRoster(ctx, "CSE", &buf)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Added != 2 {
		t.Errorf("expected 2 added, got %d", result.Added)
	}
	if result.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", result.Failed)
	}

	student, err := repo.Student().GetByEmail(ctx, "ravi@college.edu")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if student.Semester != models.SemesterIII || student.Section != "A" {
		t.Errorf("unexpected class scope %s/%s", student.Semester, student.Section)
	}
}
