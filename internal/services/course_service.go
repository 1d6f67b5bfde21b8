package services

import (
	"context"
	"log/slog"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
	"github.com/campus-erp/records-service/internal/validator"
)

// CourseServiceImpl manages courses and the course-faculty relation held
// in the takenBy snapshot list. Assignment mutations read the course under
// a row lock inside a transaction so concurrent assigns cannot both pass
// the membership check.
type CourseServiceImpl struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewCourseService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) CourseService {
	return &CourseServiceImpl{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

func (s *CourseServiceImpl) AddCourse(ctx context.Context, department string, req AddCourseRequest) (*models.Course, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	exists, err := s.repo.Course().ExistsByCode(ctx, req.CourseCode)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("Course already exists in the database.")
	}

	course := &models.Course{
		CourseCode:      req.CourseCode,
		CourseName:      req.CourseName,
		CourseShortName: req.CourseShortName,
		CourseType:      req.CourseType,
		ClassType:       req.ClassType,
		Department:      department,
		Semester:        req.Semester,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("Course already exists in the database.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("course added", "course_code", course.CourseCode, "department", department)
	return course, nil
}

func (s *CourseServiceImpl) ListCourses(ctx context.Context, department string) ([]models.Course, error) {
	courses, err := s.repo.Course().ListByDepartment(ctx, department)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return courses, nil
}

func (s *CourseServiceImpl) GetFacultiesByCourse(ctx context.Context, courseID uint) ([]models.FacultyRef, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("Course not found.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}
	return course.TakenBy, nil
}

func (s *CourseServiceImpl) AssignFaculty(ctx context.Context, courseID, facultyID uint) (*models.Course, error) {
	var updated *models.Course

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		course, err := tx.Course().GetByIDForUpdate(ctx, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("Course not found.")
			}
			return NewInternalError("Internal server error.", err)
		}

		faculty, err := tx.Faculty().GetByID(ctx, facultyID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("Faculty not found.")
			}
			return NewInternalError("Internal server error.", err)
		}

		if course.Teaches(faculty.ID) {
			return NewConflictError("Faculty already assigned to this course.")
		}

		course.TakenBy = append(course.TakenBy, models.FacultyRef{
			FacultyID:   faculty.ID,
			FacultyName: faculty.Name,
		})
		if err := tx.Course().Update(ctx, course); err != nil {
			return NewInternalError("Internal server error.", err)
		}

		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("faculty assigned to course", "course_id", courseID, "faculty_id", facultyID)
	return updated, nil
}

func (s *CourseServiceImpl) RemoveFaculty(ctx context.Context, courseID, facultyID uint) (*models.Course, error) {
	var updated *models.Course

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		course, err := tx.Course().GetByIDForUpdate(ctx, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("Course not found.")
			}
			return NewInternalError("Internal server error.", err)
		}

		faculty, err := tx.Faculty().GetByID(ctx, facultyID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("Faculty not found.")
			}
			return NewInternalError("Internal server error.", err)
		}

		if !course.Teaches(faculty.ID) {
			return NewConflictError("Faculty is not assigned to this course.")
		}

		kept := course.TakenBy[:0]
		for _, ref := range course.TakenBy {
			if ref.FacultyID != faculty.ID {
				kept = append(kept, ref)
			}
		}
		course.TakenBy = kept

		if err := tx.Course().Update(ctx, course); err != nil {
			return NewInternalError("Internal server error.", err)
		}

		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("faculty removed from course", "course_id", courseID, "faculty_id", facultyID)
	return updated, nil
}
