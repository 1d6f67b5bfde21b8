package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/services"
	"github.com/campus-erp/records-service/internal/utils"
)

// FacultyHandler serves the faculty surface: identity, profile, teaching
// material and attendance.
type FacultyHandler struct {
	BaseHandler
	authService       services.AuthService
	courseService     services.CourseService
	attendanceService services.AttendanceService
	publishingService services.PublishingService
	profileService    services.ProfileService
	uploadDir         string
}

func NewFacultyHandler(sm services.ServiceManager, uploadDir string, logger utils.Logger) *FacultyHandler {
	return &FacultyHandler{
		BaseHandler:       NewBaseHandler(logger),
		authService:       sm.Auth(),
		courseService:     sm.Course(),
		attendanceService: sm.Attendance(),
		publishingService: sm.Publishing(),
		profileService:    sm.Profile(),
		uploadDir:         uploadDir,
	}
}

// Register creates a faculty account.
func (h *FacultyHandler) Register(c *gin.Context) {
	var req services.RegisterFacultyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	faculty, err := h.authService.RegisterFaculty(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated,
		fmt.Sprintf("Registration of %s with EmpId %s is successful.", faculty.Name, faculty.EmpID),
		true, gin.H{"data": faculty})
}

// Login authenticates a faculty member.
func (h *FacultyHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginFaculty(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Login successful.", true, gin.H{
		"authToken": resp.AuthToken,
		"name":      resp.Name,
		"userType":  resp.UserType,
		"id":        resp.ID,
	})
}

// ChangePassword rotates the caller's credential.
func (h *FacultyHandler) ChangePassword(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), identity, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Password changed successfully.", true, nil)
}

// GetProfile returns the caller's own faculty record.
func (h *FacultyHandler) GetProfile(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	profile, svcErr := h.profileService.GetFacultyProfile(c.Request.Context(), identity.ID)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Faculty profile fetched successfully.", true, gin.H{
		"profile": profile,
	})
}

// UpdateProfile applies a partial profile update with an optional photo.
// The fields come as a JSON document in the "faculty" form value so that
// the photo can ride along in the same multipart request.
func (h *FacultyHandler) UpdateProfile(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.UpdateFacultyProfileRequest
	if raw := c.PostForm("faculty"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			h.sendResponse(c, http.StatusBadRequest, "Invalid request payload.", false, nil)
			return
		}
	} else if !h.bindJSON(c, &req) {
		return
	}

	imagePath, ok := h.saveUploadedFile(c, "image", h.uploadDir)
	if !ok {
		return
	}

	updated, svcErr := h.profileService.UpdateFacultyProfile(c.Request.Context(), identity.ID, req, imagePath)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Faculty details updated successfully.", true, gin.H{
		"updatedProfile": updated,
	})
}

// AddCourse creates a course in the caller's department.
func (h *FacultyHandler) AddCourse(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	profile, svcErr := h.profileService.GetFacultyProfile(c.Request.Context(), identity.ID)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	var req services.AddCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if _, err := h.courseService.AddCourse(c.Request.Context(), profile.Department, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated, "Course added successfully.", true, nil)
}

// PublishNotice creates a notice with an optional PDF attachment.
func (h *FacultyHandler) PublishNotice(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.PublishNoticeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendResponse(c, http.StatusBadRequest, "Invalid request payload.", false, nil)
		return
	}

	pdfPath, ok := h.saveUploadedFile(c, "pdf", h.uploadDir)
	if !ok {
		return
	}

	notice, svcErr := h.publishingService.PublishNotice(c.Request.Context(), identity, req, pdfPath)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Notice published successfully.", true, gin.H{
		"notice": notice,
	})
}

// GetNotices lists notices, newest first.
func (h *FacultyHandler) GetNotices(c *gin.Context) {
	notices, err := h.publishingService.ListNotices(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "", true, gin.H{
		"notices": notices,
	})
}

// AddAssignment publishes an assignment; the PDF is mandatory.
func (h *FacultyHandler) AddAssignment(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.AddAssignmentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendResponse(c, http.StatusBadRequest, "Invalid request payload.", false, nil)
		return
	}

	pdfPath, ok := h.saveUploadedFile(c, "pdf", h.uploadDir)
	if !ok {
		return
	}

	assignment, svcErr := h.publishingService.AddAssignment(c.Request.Context(), identity, req, pdfPath)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusCreated,
		fmt.Sprintf("Assignment with ID %s added successfully.", assignment.AssignmentID), true, gin.H{
			"assignment": assignment,
		})
}

// GetAssignments lists published assignments.
func (h *FacultyHandler) GetAssignments(c *gin.Context) {
	assignments, err := h.publishingService.ListAssignments(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Assignments fetched successfully.", true, gin.H{
		"assignments": assignments,
	})
}

// UploadPyq publishes a previous-year question paper for a course.
func (h *FacultyHandler) UploadPyq(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.UploadPYQRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendResponse(c, http.StatusBadRequest, "Invalid request payload.", false, nil)
		return
	}

	pdfPath, ok := h.saveUploadedFile(c, "pdf", h.uploadDir)
	if !ok {
		return
	}

	pyq, svcErr := h.publishingService.UploadPYQ(c.Request.Context(), identity, req, pdfPath)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusCreated, "PYQ uploaded successfully.", true, gin.H{
		"pyq": pyq,
	})
}

// GetPyqsByCourse lists the question papers published for one course.
func (h *FacultyHandler) GetPyqsByCourse(c *gin.Context) {
	courseID := h.parseUintQuery(c, "courseId")
	if courseID == 0 {
		return
	}

	pyqs, err := h.publishingService.ListPYQsByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "PYQs fetched successfully.", true, gin.H{
		"pyqs": pyqs,
	})
}

// MarkAttendance records one attendance session taken by the caller.
func (h *FacultyHandler) MarkAttendance(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.MarkAttendanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	attendance, svcErr := h.attendanceService.MarkAttendance(c.Request.Context(), identity, req)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusCreated, "Attendance marked successfully.", true, gin.H{
		"attendance": attendance,
	})
}

// GetPendingAttendance lists the caller's timetabled sessions from the
// recent working days that have no attendance record yet.
func (h *FacultyHandler) GetPendingAttendance(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	pending, svcErr := h.attendanceService.FindAttendanceGaps(c.Request.Context(), identity.ID, time.Now())
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Pending attendance fetched successfully.", true, gin.H{
		"pending": pending,
	})
}

// GetTimetable fetches the weekly schedule for a class.
func (h *FacultyHandler) GetTimetable(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	profile, svcErr := h.profileService.GetFacultyProfile(c.Request.Context(), identity.ID)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	semester := models.Semester(c.Query("semester"))
	section := c.Query("section")
	if semester == "" || section == "" {
		h.sendResponse(c, http.StatusBadRequest, "Semester and section are required.", false, nil)
		return
	}

	timetable, svcErr := h.attendanceService.GetTimetable(c.Request.Context(), profile.Department, semester, section)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Timetable fetched successfully.", true, gin.H{
		"timetable": timetable,
	})
}
