package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

type NoticePostgreSQL struct {
	db *gorm.DB
}

func NewNoticePostgreSQL(db *gorm.DB) repositories.NoticeRepository {
	return &NoticePostgreSQL{db: db}
}

func (n *NoticePostgreSQL) Create(ctx context.Context, notice *models.Notice) error {
	if err := n.db.WithContext(ctx).Create(notice).Error; err != nil {
		return fmt.Errorf("failed to create notice: %w", err)
	}
	return nil
}

func (n *NoticePostgreSQL) ExistsByNumber(ctx context.Context, noticeNumber string) (bool, error) {
	var count int64
	err := n.db.WithContext(ctx).
		Model(&models.Notice{}).
		Where("notice_number = ?", noticeNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check notice existence: %w", err)
	}
	return count > 0, nil
}

func (n *NoticePostgreSQL) List(ctx context.Context) ([]models.Notice, error) {
	var notices []models.Notice
	if err := n.db.WithContext(ctx).Order("created_at DESC").Find(&notices).Error; err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	return notices, nil
}

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (a *AssignmentPostgreSQL) Create(ctx context.Context, assignment *models.Assignment) error {
	if err := a.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (a *AssignmentPostgreSQL) ExistsByAssignmentID(ctx context.Context, assignmentID string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("assignment_id = ?", assignmentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check assignment existence: %w", err)
	}
	return count > 0, nil
}

func (a *AssignmentPostgreSQL) List(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := a.db.WithContext(ctx).Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

type PYQPostgreSQL struct {
	db *gorm.DB
}

func NewPYQPostgreSQL(db *gorm.DB) repositories.PYQRepository {
	return &PYQPostgreSQL{db: db}
}

func (p *PYQPostgreSQL) Create(ctx context.Context, pyq *models.PYQ) error {
	if err := p.db.WithContext(ctx).Create(pyq).Error; err != nil {
		return fmt.Errorf("failed to create question paper: %w", err)
	}
	return nil
}

func (p *PYQPostgreSQL) ExistsForExam(ctx context.Context, courseID uint, examSession, examType string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&models.PYQ{}).
		Where("course_id = ? AND exam_session = ? AND exam_type = ?", courseID, examSession, examType).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check question paper existence: %w", err)
	}
	return count > 0, nil
}

func (p *PYQPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]models.PYQ, error) {
	var papers []models.PYQ
	if err := p.db.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at DESC").Find(&papers).Error; err != nil {
		return nil, fmt.Errorf("failed to list question papers: %w", err)
	}
	return papers, nil
}
