package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/events"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
	"github.com/campus-erp/records-service/internal/uploads"
	"github.com/campus-erp/records-service/internal/validator"
)

// PublishingServiceImpl handles notices, assignments and question paper
// archives. Uploaded temp files are removed on every path, including
// failures before the upload happens.
type PublishingServiceImpl struct {
	repo      repositories.Repository
	validator *validator.Validator
	uploader  uploads.Uploader
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewPublishingService(repo repositories.Repository, v *validator.Validator, uploader uploads.Uploader, publisher events.EventPublisher, logger *slog.Logger) PublishingService {
	return &PublishingServiceImpl{
		repo:      repo,
		validator: v,
		uploader:  uploader,
		publisher: publisher,
		logger:    logger,
	}
}

func authorRef(id auth.Identity) models.AuthorRef {
	return models.AuthorRef{UserType: id.Role, UserID: id.ID, UserName: id.Name}
}

// PublishNotice creates a notice; pdfPath is optional and empty when the
// request carried no file.
func (s *PublishingServiceImpl) PublishNotice(ctx context.Context, author auth.Identity, req PublishNoticeRequest, pdfPath string) (*models.Notice, error) {
	defer uploads.RemoveFile(pdfPath)

	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	exists, err := s.repo.Notice().ExistsByNumber(ctx, req.NoticeNumber)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("Notice already exists.")
	}

	var pdfURL string
	if pdfPath != "" {
		result, err := s.uploader.UploadFile(pdfPath, "raw")
		if err != nil {
			return nil, NewInternalError("Internal server error.", err)
		}
		pdfURL = result.SecureURL
	}

	notice := &models.Notice{
		NoticeNumber:      req.NoticeNumber,
		NoticeSubject:     req.NoticeSubject,
		NoticeDescription: req.NoticeDescription,
		Author:            authorRef(author),
		PDFURL:            pdfURL,
	}
	if err := s.repo.Notice().Create(ctx, notice); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("Notice already exists.")
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	if err := s.publisher.Publish(events.TopicNoticePublished, events.NoticePublishedEvent{
		NoticeNumber: notice.NoticeNumber,
		AuthorType:   string(author.Role),
		AuthorName:   author.Name,
		HasFile:      pdfURL != "",
		OccurredAt:   time.Now(),
	}); err != nil {
		s.logger.Warn("failed to publish notice event", "error", err)
	}

	s.logger.Info("notice published", "notice_number", notice.NoticeNumber, "author_type", author.Role)
	return notice, nil
}

func (s *PublishingServiceImpl) ListNotices(ctx context.Context) ([]models.Notice, error) {
	notices, err := s.repo.Notice().List(ctx)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return notices, nil
}

// AddAssignment creates an assignment; the file is mandatory.
func (s *PublishingServiceImpl) AddAssignment(ctx context.Context, author auth.Identity, req AddAssignmentRequest, filePath string) (*models.Assignment, error) {
	defer uploads.RemoveFile(filePath)

	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}
	if filePath == "" {
		return nil, NewBadRequestError("Assignment file is required.")
	}

	exists, err := s.repo.Assignment().ExistsByAssignmentID(ctx, req.AssignmentID)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError(fmt.Sprintf("%s already exists.", req.AssignmentID))
	}

	result, err := s.uploader.UploadFile(filePath, "raw")
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	assignment := &models.Assignment{
		AssignmentID: req.AssignmentID,
		Subject:      req.Subject,
		Description:  req.Description,
		CourseID:     req.CourseID,
		Semester:     req.Semester,
		Section:      req.Section,
		DueDate:      req.DueDate,
		Author:       authorRef(author),
		FileURL:      result.SecureURL,
	}
	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError(fmt.Sprintf("%s already exists.", req.AssignmentID))
		}
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("assignment added", "assignment_id", assignment.AssignmentID, "author_id", author.ID)
	return assignment, nil
}

func (s *PublishingServiceImpl) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	assignments, err := s.repo.Assignment().List(ctx)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return assignments, nil
}

// UploadPYQ archives a question paper against a course resolved by its
// code. One paper per (course, examSession, examType).
func (s *PublishingServiceImpl) UploadPYQ(ctx context.Context, author auth.Identity, req UploadPYQRequest, pdfPath string) (*models.PYQ, error) {
	defer uploads.RemoveFile(pdfPath)

	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}
	if pdfPath == "" {
		return nil, NewBadRequestError("PYQ file is required.")
	}

	course, err := s.repo.Course().GetByCode(ctx, req.CourseCode)
	if err != nil {
		return nil, notFoundOrInternal(err, fmt.Sprintf("No course with %s found in all the courses.", req.CourseCode))
	}

	exists, err := s.repo.PYQ().ExistsForExam(ctx, course.ID, req.ExamSession, req.ExamType)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("Specified pyq already exists.")
	}

	result, err := s.uploader.UploadFile(pdfPath, "raw")
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	pyq := &models.PYQ{
		CourseID:    course.ID,
		AuthorID:    author.ID,
		ExamSession: req.ExamSession,
		ExamType:    req.ExamType,
		PDFURL:      result.SecureURL,
	}
	if err := s.repo.PYQ().Create(ctx, pyq); err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("pyq uploaded", "course_code", req.CourseCode, "exam_session", req.ExamSession, "exam_type", req.ExamType)
	return pyq, nil
}

func (s *PublishingServiceImpl) ListPYQsByCourse(ctx context.Context, courseID uint) ([]models.PYQ, error) {
	papers, err := s.repo.PYQ().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	return papers, nil
}
