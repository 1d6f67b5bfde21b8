package services

import (
	"context"
	"testing"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/events"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/uploads"
	"github.com/campus-erp/records-service/internal/validator"
)

// fakeUploader records upload calls without touching the network.
type fakeUploader struct {
	calls []string
}

func (u *fakeUploader) UploadFile(localPath, resourceType string) (*uploads.UploadResult, error) {
	u.calls = append(u.calls, resourceType)
	return &uploads.UploadResult{
		PublicID:  "records/test",
		SecureURL: "https://cdn.example.com/records/test.pdf",
	}, nil
}

func newPublishingService(repo *fakeRepository) (PublishingService, *fakeUploader, *events.MockEventPublisher) {
	uploader := &fakeUploader{}
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewPublishingService(repo, validator.New(), uploader, publisher, testLogger())
	return service, uploader, publisher
}

func facultyAuthor() auth.Identity {
	return auth.Identity{ID: 7, Name: "Prof. Rao", Role: models.RoleFaculty}
}

func TestPublishingService_PublishNotice(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, uploader, publisher := newPublishingService(repo)

	req := PublishNoticeRequest{
		NoticeNumber:  "N-2025-001",
		NoticeSubject: "Mid-semester exam schedule",
	}

	t.Run("without file", func(t *testing.T) {
		notice, err := service.PublishNotice(ctx, facultyAuthor(), req, "")
		if err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		if notice.PDFURL != "" {
			t.Error("expected no pdf url")
		}
		if notice.Author.UserName != "Prof. Rao" || notice.Author.UserType != models.RoleFaculty {
			t.Errorf("unexpected author snapshot %+v", notice.Author)
		}
		if len(uploader.calls) != 0 {
			t.Error("uploader should not be called without a file")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Topic != events.TopicNoticePublished {
			t.Errorf("expected one notice event, got %+v", published)
		}
	})

	t.Run("duplicate number", func(t *testing.T) {
		_, err := service.PublishNotice(ctx, facultyAuthor(), req, "")
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		second := req
		second.NoticeNumber = "N-2025-002"
		if _, err := service.PublishNotice(ctx, facultyAuthor(), second, ""); err != nil {
			t.Fatalf("publish failed: %v", err)
		}

		notices, err := service.ListNotices(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(notices) != 2 || notices[0].NoticeNumber != "N-2025-002" {
			t.Errorf("expected newest first, got %+v", notices)
		}
	})
}

func TestPublishingService_AddAssignment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, uploader, _ := newPublishingService(repo)

	req := AddAssignmentRequest{
		AssignmentID: "ASG-101",
		Subject:      "OS Assignment 1",
	}

	t.Run("file required", func(t *testing.T) {
		_, err := service.AddAssignment(ctx, facultyAuthor(), req, "")
		if CodeOf(err) != ErrCodeBadRequest {
			t.Fatalf("expected bad request error, got %v", err)
		}
	})

	t.Run("success uploads as raw", func(t *testing.T) {
		assignment, err := service.AddAssignment(ctx, facultyAuthor(), req, "/tmp/does-not-matter.pdf")
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if assignment.FileURL == "" {
			t.Error("expected a hosted file url")
		}
		if len(uploader.calls) != 1 || uploader.calls[0] != "raw" {
			t.Errorf("expected one raw upload, got %v", uploader.calls)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := service.AddAssignment(ctx, facultyAuthor(), req, "/tmp/does-not-matter.pdf")
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})
}

func TestPublishingService_UploadPYQ(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	course := repo.addCourse(models.Course{
		CourseCode: "CS-301", CourseName: "Operating Systems", CourseShortName: "OS",
		CourseType: models.CourseCore, ClassType: models.ClassTheory,
		Department: "CSE", Semester: models.SemesterV,
	})

	service, _, _ := newPublishingService(repo)

	req := UploadPYQRequest{
		CourseCode:  "CS-301",
		ExamSession: "Dec 2024",
		ExamType:    "End Semester",
	}

	t.Run("file required", func(t *testing.T) {
		_, err := service.UploadPYQ(ctx, facultyAuthor(), req, "")
		if CodeOf(err) != ErrCodeBadRequest {
			t.Fatalf("expected bad request error, got %v", err)
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		bad := req
		bad.CourseCode = "XX-999"
		_, err := service.UploadPYQ(ctx, facultyAuthor(), bad, "/tmp/paper.pdf")
		if CodeOf(err) != ErrCodeNotFound {
			t.Fatalf("expected not found error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		pyq, err := service.UploadPYQ(ctx, facultyAuthor(), req, "/tmp/paper.pdf")
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		if pyq.CourseID != course.ID {
			t.Errorf("expected course id %d, got %d", course.ID, pyq.CourseID)
		}
		if pyq.AuthorID != facultyAuthor().ID {
			t.Errorf("expected author id %d, got %d", facultyAuthor().ID, pyq.AuthorID)
		}
	})

	t.Run("same exam twice", func(t *testing.T) {
		_, err := service.UploadPYQ(ctx, facultyAuthor(), req, "/tmp/paper.pdf")
		if CodeOf(err) != ErrCodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})

	t.Run("list by course", func(t *testing.T) {
		papers, err := service.ListPYQsByCourse(ctx, course.ID)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(papers) != 1 {
			t.Errorf("expected 1 paper, got %d", len(papers))
		}
	})
}
