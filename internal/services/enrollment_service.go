package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/events"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
	"github.com/campus-erp/records-service/internal/validator"
)

// EnrollmentServiceImpl runs the bulk enrollment pipeline: candidates
// missing a natural key are dropped silently, candidates whose email or
// urn/empId already exists are skipped, and repeats of a key earlier in
// the same batch are skipped too. The remainder is inserted inside one
// transaction; skipped candidates count toward the failed total.
type EnrollmentServiceImpl struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewEnrollmentService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) EnrollmentService {
	return &EnrollmentServiceImpl{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *EnrollmentServiceImpl) EnrollStudent(ctx context.Context, department string, req EnrollStudentRequest) (*models.Student, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	exists, err := s.repo.Student().ExistsByEmailOrURN(ctx, req.Email, req.URN)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("Student already exists in the database.")
	}

	hash, err := auth.HashPassword(req.Email)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	student := &models.Student{
		Name:       req.Name,
		Email:      req.Email,
		URN:        req.URN,
		CRN:        req.CRN,
		Department: department,
		Semester:   req.Semester,
		Section:    req.Section,
		Password:   hash,
	}
	if err := s.repo.Student().Create(ctx, student); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("Student already exists in the database.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("student enrolled", "urn", student.URN, "department", department)
	return student, nil
}

func (s *EnrollmentServiceImpl) EnrollFacultyMember(ctx context.Context, department string, req EnrollFacultyRequest) (*models.Faculty, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	exists, err := s.repo.Faculty().ExistsByEmailOrEmpID(ctx, req.Email, req.EmpID)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("Faculty already exists in the database.")
	}

	hash, err := auth.HashPassword(req.Email)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	faculty := &models.Faculty{
		Name:         req.Name,
		Email:        req.Email,
		EmpID:        req.EmpID,
		MobileNumber: req.MobileNumber,
		Position:     req.Position,
		Department:   department,
		Password:     hash,
	}
	if err := s.repo.Faculty().Create(ctx, faculty); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("Faculty already exists in the database.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("faculty enrolled", "emp_id", faculty.EmpID, "department", department)
	return faculty, nil
}

func (s *EnrollmentServiceImpl) EnrollStudents(ctx context.Context, department string, batch []StudentCandidate) (*EnrollmentResult, error) {
	if len(batch) == 0 {
		return nil, NewBadRequestError("No students found.")
	}

	var valid []StudentCandidate
	for _, c := range batch {
		if c.Email != "" && c.URN != "" {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return nil, NewBadRequestError("No valid student data found.")
	}

	emails := make([]string, len(valid))
	urns := make([]string, len(valid))
	for i, c := range valid {
		emails[i] = c.Email
		urns[i] = c.URN
	}

	existing, err := s.repo.Student().FindByNaturalKeys(ctx, emails, urns)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	existingEmails := make(map[string]struct{}, len(existing))
	existingURNs := make(map[string]struct{}, len(existing))
	for _, st := range existing {
		existingEmails[st.Email] = struct{}{}
		existingURNs[st.URN] = struct{}{}
	}

	// Keys claimed earlier in the batch are skipped like existing rows,
	// so a repeated candidate cannot fail the whole insert.
	var newStudents []models.Student
	for _, c := range valid {
		if _, ok := existingEmails[c.Email]; ok {
			continue
		}
		if _, ok := existingURNs[c.URN]; ok {
			continue
		}
		existingEmails[c.Email] = struct{}{}
		existingURNs[c.URN] = struct{}{}
		hash, err := auth.HashPassword(c.Email)
		if err != nil {
			return nil, NewInternalError("Internal server error.", err)
		}
		newStudents = append(newStudents, models.Student{
			Name:       c.Name,
			Email:      c.Email,
			URN:        c.URN,
			CRN:        c.CRN,
			Department: department,
			Semester:   c.Semester,
			Section:    c.Section,
			Password:   hash,
		})
	}

	if len(newStudents) > 0 {
		err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
			return tx.Student().CreateBatch(ctx, newStudents)
		})
		if err != nil {
			if repositories.IsDuplicateError(err) {
				return nil, NewConflictError("Student already exists in the database.")
			}
			return nil, NewInternalError("Internal server error.", err)
		}
	}

	result := &EnrollmentResult{
		Added:  len(newStudents),
		Failed: len(batch) - len(newStudents),
		Total:  len(batch),
	}

	s.publishCompleted(string(models.RoleStudent), department, result)
	s.logger.Info("students enrolled", "department", department, "added", result.Added, "failed", result.Failed)
	return result, nil
}

func (s *EnrollmentServiceImpl) EnrollFaculty(ctx context.Context, department string, batch []FacultyCandidate) (*EnrollmentResult, error) {
	if len(batch) == 0 {
		return nil, NewBadRequestError("No faculties found.")
	}

	var valid []FacultyCandidate
	for _, c := range batch {
		if c.Email != "" && c.EmpID != "" {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return nil, NewBadRequestError("No valid faculty data found.")
	}

	emails := make([]string, len(valid))
	empIDs := make([]string, len(valid))
	for i, c := range valid {
		emails[i] = c.Email
		empIDs[i] = c.EmpID
	}

	existing, err := s.repo.Faculty().FindByNaturalKeys(ctx, emails, empIDs)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	existingEmails := make(map[string]struct{}, len(existing))
	existingEmpIDs := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		existingEmails[f.Email] = struct{}{}
		existingEmpIDs[f.EmpID] = struct{}{}
	}

	var newFaculties []models.Faculty
	for _, c := range valid {
		if _, ok := existingEmails[c.Email]; ok {
			continue
		}
		if _, ok := existingEmpIDs[c.EmpID]; ok {
			continue
		}
		existingEmails[c.Email] = struct{}{}
		existingEmpIDs[c.EmpID] = struct{}{}
		hash, err := auth.HashPassword(c.Email)
		if err != nil {
			return nil, NewInternalError("Internal server error.", err)
		}
		newFaculties = append(newFaculties, models.Faculty{
			Name:         c.Name,
			Email:        c.Email,
			EmpID:        c.EmpID,
			MobileNumber: c.MobileNumber,
			Position:     c.Position,
			Department:   department,
			Password:     hash,
		})
	}

	if len(newFaculties) > 0 {
		err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
			return tx.Faculty().CreateBatch(ctx, newFaculties)
		})
		if err != nil {
			if repositories.IsDuplicateError(err) {
				return nil, NewConflictError("Faculty already exists in the database.")
			}
			return nil, NewInternalError("Internal server error.", err)
		}
	}

	result := &EnrollmentResult{
		Added:  len(newFaculties),
		Failed: len(batch) - len(newFaculties),
		Total:  len(batch),
	}

	s.publishCompleted(string(models.RoleFaculty), department, result)
	s.logger.Info("faculties enrolled", "department", department, "added", result.Added, "failed", result.Failed)
	return result, nil
}

// rosterColumns is the expected header order of an .xlsx student roster.
var rosterColumns = []string{"name", "email", "urn", "crn", "semester", "section"}

func (s *EnrollmentServiceImpl) ImportStudentRoster(ctx context.Context, department string, roster io.Reader) (*EnrollmentResult, error) {
	f, err := excelize.OpenReader(roster)
	if err != nil {
		return nil, NewBadRequestError("Could not read the roster file.")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, NewBadRequestError("Roster file has no sheets.")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, NewBadRequestError("Could not read the roster rows.")
	}
	if len(rows) < 2 {
		return nil, NewBadRequestError("No students found.")
	}

	cols := columnIndexes(rows[0])
	batch := make([]StudentCandidate, 0, len(rows)-1)
	for _, row := range rows[1:] {
		batch = append(batch, StudentCandidate{
			Name:     cell(row, cols["name"]),
			Email:    cell(row, cols["email"]),
			URN:      cell(row, cols["urn"]),
			CRN:      cell(row, cols["crn"]),
			Semester: models.Semester(cell(row, cols["semester"])),
			Section:  cell(row, cols["section"]),
		})
	}

	return s.EnrollStudents(ctx, department, batch)
}

// columnIndexes maps known roster headers to their column position;
// unknown headers are ignored, missing ones resolve to -1.
func columnIndexes(header []string) map[string]int {
	cols := make(map[string]int, len(rosterColumns))
	for _, name := range rosterColumns {
		cols[name] = -1
	}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := cols[key]; ok {
			cols[key] = i
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (s *EnrollmentServiceImpl) publishCompleted(role, department string, result *EnrollmentResult) {
	err := s.publisher.Publish(events.TopicEnrollmentCompleted, events.EnrollmentCompletedEvent{
		Role:       role,
		Department: department,
		Added:      result.Added,
		Failed:     result.Failed,
		OccurredAt: time.Now(),
	})
	if err != nil {
		// Event delivery is best effort; enrollment already committed.
		s.logger.Warn("failed to publish enrollment event", "error", err)
	}
}
