package services

import (
	"context"
	"log/slog"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

// TGServiceImpl manages the teacher-guardian relation. The TG field on a
// student is a snapshot {facultyId, facultyName} copied at assignment
// time; renaming the faculty later does not refresh it.
type TGServiceImpl struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewTGService(repo repositories.Repository, logger *slog.Logger) TGService {
	return &TGServiceImpl{repo: repo, logger: logger}
}

func (s *TGServiceImpl) AssignTG(ctx context.Context, facultyID uint) (*models.Faculty, error) {
	faculty, err := s.repo.Faculty().GetByID(ctx, facultyID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Faculty not found.")
	}

	if faculty.IsTG {
		return nil, NewConflictError("Faculty is already assigned as TG.")
	}

	faculty.IsTG = true
	if err := s.repo.Faculty().Update(ctx, faculty); err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("tg assigned", "faculty_id", facultyID)
	return faculty, nil
}

func (s *TGServiceImpl) UnassignTG(ctx context.Context, facultyID uint) (*models.Faculty, error) {
	faculty, err := s.repo.Faculty().GetByID(ctx, facultyID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Faculty not found.")
	}

	if !faculty.IsTG {
		return nil, NewConflictError("Faculty is not assigned as TG.")
	}

	faculty.IsTG = false
	if err := s.repo.Faculty().Update(ctx, faculty); err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("tg unassigned", "faculty_id", facultyID)
	return faculty, nil
}

// requireTG resolves the faculty and checks the TG flag. A faculty that
// exists but is not a TG answers the same way as a missing one.
func (s *TGServiceImpl) requireTG(ctx context.Context, repo repositories.Repository, facultyID uint) (*models.Faculty, error) {
	faculty, err := repo.Faculty().GetByID(ctx, facultyID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Faculty not found.")
	}
	if !faculty.IsTG {
		return nil, NewNotFoundError("Faculty not found.")
	}
	return faculty, nil
}

func (s *TGServiceImpl) AssignStudentToTG(ctx context.Context, facultyID, studentID uint) error {
	faculty, err := s.requireTG(ctx, s.repo, facultyID)
	if err != nil {
		return err
	}

	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return notFoundOrInternal(err, "Student not found.")
	}

	student.TG = &models.TGRef{FacultyID: faculty.ID, FacultyName: faculty.Name}
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return NewInternalError("Internal server error.", err)
	}

	s.logger.Info("student assigned to tg", "student_id", studentID, "faculty_id", facultyID)
	return nil
}

// AssignStudentsToTG applies the whole batch inside one transaction; a
// failure on any student rolls back every assignment.
func (s *TGServiceImpl) AssignStudentsToTG(ctx context.Context, facultyID uint, studentIDs []uint) (int, error) {
	if len(studentIDs) == 0 {
		return 0, NewBadRequestError("No students found.")
	}

	faculty, err := s.requireTG(ctx, s.repo, facultyID)
	if err != nil {
		return 0, err
	}

	students, err := s.repo.Student().FindByIDs(ctx, studentIDs)
	if err != nil {
		return 0, NewInternalError("Internal server error.", err)
	}
	if len(students) == 0 {
		return 0, NewNotFoundError("No valid students found.")
	}

	ref := &models.TGRef{FacultyID: faculty.ID, FacultyName: faculty.Name}
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for i := range students {
			students[i].TG = ref
			if err := tx.Student().Update(ctx, &students[i]); err != nil {
				return NewInternalError("Internal server error.", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("students assigned to tg", "faculty_id", facultyID, "count", len(students))
	return len(students), nil
}

func (s *TGServiceImpl) ListTGs(ctx context.Context, department string) ([]models.Faculty, error) {
	tgs, err := s.repo.Faculty().ListTGByDepartment(ctx, department)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return tgs, nil
}
