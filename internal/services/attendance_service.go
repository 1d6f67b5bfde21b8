package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
	"github.com/campus-erp/records-service/internal/validator"
)

// AttendanceServiceImpl records taught sessions and derives the pending
// ones by cross-referencing timetables against recorded attendance.
type AttendanceServiceImpl struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewAttendanceService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) AttendanceService {
	return &AttendanceServiceImpl{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

// MarkAttendance records one session. Slot uniqueness is guarded by the
// existence pre-check; there is no database constraint on the slot.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, caller auth.Identity, req MarkAttendanceRequest) (*models.Attendance, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	course, err := s.repo.Course().GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Course not found.")
	}

	date := truncateToDay(req.Date)

	exists, err := s.repo.Attendance().Exists(ctx, course.ID, caller.ID, date, req.PeriodNumber)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}
	if exists {
		return nil, NewConflictError("Attendance already marked for this period.")
	}

	marks := make([]models.StudentMark, len(req.Students))
	for i, m := range req.Students {
		marks[i] = models.StudentMark{StudentID: m.StudentID, Status: m.Status}
	}

	attendance := &models.Attendance{
		CourseID:     course.ID,
		FacultyID:    caller.ID,
		Department:   course.Department,
		Semester:     req.Semester,
		Section:      req.Section,
		Date:         date,
		PeriodNumber: req.PeriodNumber,
		Students:     marks,
	}
	if err := s.repo.Attendance().Create(ctx, attendance); err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("attendance marked",
		"course_id", course.ID, "faculty_id", caller.ID,
		"date", date.Format("2006-01-02"), "period", req.PeriodNumber)
	return attendance, nil
}

func (s *AttendanceServiceImpl) UpsertTimetable(ctx context.Context, department string, req UpsertTimetableRequest) (*models.Timetable, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, NewValidationError(verrs.Error())
	}

	week := make([]models.TimetableDay, len(req.Week))
	for i, day := range req.Week {
		periods := make([]models.TimetablePeriod, len(day.Periods))
		for j, p := range day.Periods {
			periods[j] = models.TimetablePeriod{
				PeriodNumber: p.PeriodNumber,
				CourseID:     p.CourseID,
				FacultyID:    p.FacultyID,
			}
		}
		week[i] = models.TimetableDay{Day: day.Day, Periods: periods}
	}

	timetable := &models.Timetable{
		Department: department,
		Semester:   req.Semester,
		Section:    req.Section,
		Week:       week,
	}
	if err := s.repo.Timetable().Upsert(ctx, timetable); err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	s.logger.Info("timetable upserted", "department", department, "semester", req.Semester, "section", req.Section)
	return timetable, nil
}

func (s *AttendanceServiceImpl) GetTimetable(ctx context.Context, department string, semester models.Semester, section string) (*models.Timetable, error) {
	timetable, err := s.repo.Timetable().GetByScope(ctx, department, semester, section)
	if err != nil {
		return nil, notFoundOrInternal(err, "Timetable not found.")
	}
	return timetable, nil
}

// FindAttendanceGaps reports every timetabled session of the faculty over
// the trailing five working days that has no attendance record. Working
// days exclude Sunday only; other holidays are not modelled, so a slot on
// a holiday shows up as pending.
func (s *AttendanceServiceImpl) FindAttendanceGaps(ctx context.Context, facultyID uint, now time.Time) ([]AttendanceGap, error) {
	dates := trailingWorkingDays(now, 5)

	timetables, err := s.repo.Timetable().List(ctx)
	if err != nil {
		return nil, NewInternalError("Internal server error.", err)
	}

	courses := make(map[uint]*models.Course)
	gaps := []AttendanceGap{}

	for _, tt := range timetables {
		for _, day := range tt.Week {
			for _, period := range day.Periods {
				if period.FacultyID != facultyID {
					continue
				}
				for _, date := range dates {
					if date.Weekday().String() != day.Day {
						continue
					}

					exists, err := s.repo.Attendance().Exists(ctx, period.CourseID, facultyID, date, period.PeriodNumber)
					if err != nil {
						return nil, NewInternalError("Internal server error.", err)
					}
					if exists {
						continue
					}

					course, ok := courses[period.CourseID]
					if !ok {
						course, err = s.repo.Course().GetByID(ctx, period.CourseID)
						if err != nil {
							return nil, notFoundOrInternal(err, "Course not found.")
						}
						courses[period.CourseID] = course
					}

					gaps = append(gaps, AttendanceGap{
						CourseCode:      course.CourseCode,
						CourseName:      course.CourseName,
						CourseShortName: course.CourseShortName,
						Department:      tt.Department,
						Semester:        tt.Semester,
						Section:         tt.Section,
						Day:             day.Day,
						Date:            date,
						PeriodNumber:    period.PeriodNumber,
					})
				}
			}
		}
	}

	sort.Slice(gaps, func(i, j int) bool {
		if !gaps[i].Date.Equal(gaps[j].Date) {
			return gaps[i].Date.Before(gaps[j].Date)
		}
		return gaps[i].PeriodNumber < gaps[j].PeriodNumber
	})
	return gaps, nil
}

// trailingWorkingDays walks backward from now, skipping Sundays, until it
// has n calendar days, returned in chronological order. Today counts when
// it is not a Sunday.
func trailingWorkingDays(now time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	day := truncateToDay(now)
	for len(dates) < n {
		if day.Weekday() != time.Sunday {
			dates = append(dates, day)
		}
		day = day.AddDate(0, 0, -1)
	}
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
