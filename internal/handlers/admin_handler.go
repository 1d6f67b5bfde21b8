package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-erp/records-service/internal/services"
	"github.com/campus-erp/records-service/internal/utils"
)

// AdminHandler serves the admin surface: identity, enrollment, courses,
// TG management, search and notices.
type AdminHandler struct {
	BaseHandler
	authService       services.AuthService
	enrollmentService services.EnrollmentService
	courseService     services.CourseService
	tgService         services.TGService
	attendanceService services.AttendanceService
	publishingService services.PublishingService
	profileService    services.ProfileService
	uploadDir         string
}

func NewAdminHandler(sm services.ServiceManager, uploadDir string, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:       NewBaseHandler(logger),
		authService:       sm.Auth(),
		enrollmentService: sm.Enrollment(),
		courseService:     sm.Course(),
		tgService:         sm.TG(),
		attendanceService: sm.Attendance(),
		publishingService: sm.Publishing(),
		profileService:    sm.Profile(),
		uploadDir:         uploadDir,
	}
}

// callerDepartment resolves the admin record of the caller; nearly every
// admin operation is scoped to that department.
func (h *AdminHandler) callerDepartment(c *gin.Context) (string, bool) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return "", false
	}
	admin, svcErr := h.profileService.GetAdmin(c.Request.Context(), identity.ID)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return "", false
	}
	return admin.Department, true
}

// Login authenticates an admin.
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginAdmin(c.Request.Context(), req)
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

// Register creates an admin account.
func (h *AdminHandler) Register(c *gin.Context) {
	var req services.RegisterAdminRequest
	if !h.bindJSON(c, &req) {
		return
	}

	admin, err := h.authService.RegisterAdmin(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated,
		fmt.Sprintf("Admin with Employee ID %s registered successfully.", admin.EmpID), true, nil)
}

// ChangePassword rotates the caller's credential.
func (h *AdminHandler) ChangePassword(c *gin.Context) {
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

// EnrollStudent enrolls one student into the admin's department.
func (h *AdminHandler) EnrollStudent(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	var req services.EnrollStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if _, err := h.enrollmentService.EnrollStudent(c.Request.Context(), department, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated, "Student enrolled successfully.", true, nil)
}

// EnrollFaculty enrolls one faculty member into the admin's department.
func (h *AdminHandler) EnrollFaculty(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	var req services.EnrollFacultyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if _, err := h.enrollmentService.EnrollFacultyMember(c.Request.Context(), department, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated, "Faculty enrolled successfully.", true, nil)
}

func enrollmentMessage(r *services.EnrollmentResult) string {
	return fmt.Sprintf("%d successfully enrolled out of %d, %d failed.", r.Added, r.Total, r.Failed)
}

// EnrollMultipleStudents runs a bulk student batch.
func (h *AdminHandler) EnrollMultipleStudents(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	var batch []services.StudentCandidate
	if !h.bindJSON(c, &batch) {
		return
	}

	result, err := h.enrollmentService.EnrollStudents(c.Request.Context(), department, batch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated, enrollmentMessage(result), true, nil)
}

// EnrollMultipleFaculties runs a bulk faculty batch.
func (h *AdminHandler) EnrollMultipleFaculties(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	var batch []services.FacultyCandidate
	if !h.bindJSON(c, &batch) {
		return
	}

	result, err := h.enrollmentService.EnrollFaculty(c.Request.Context(), department, batch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated, enrollmentMessage(result), true, nil)
}

// ImportStudentRoster parses an uploaded .xlsx roster and feeds it through
// the bulk enrollment pipeline.
func (h *AdminHandler) ImportStudentRoster(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("roster")
	if err != nil {
		h.sendResponse(c, http.StatusBadRequest, "Roster file is required.", false, nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendResponse(c, http.StatusInternalServerError, "Failed to read the roster file.", false, nil)
		return
	}
	defer file.Close()

	result, svcErr := h.enrollmentService.ImportStudentRoster(c.Request.Context(), department, file)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusCreated, enrollmentMessage(result), true, nil)
}

// FetchAllStudents lists every student of a department.
func (h *AdminHandler) FetchAllStudents(c *gin.Context) {
	department := c.Param("department")
	students, err := h.profileService.ListStudentsByDepartment(c.Request.Context(), department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Students fetched successfully.", true, gin.H{
		"students": students,
	})
}

// SearchStudent filters students by substring and optional scope.
func (h *AdminHandler) SearchStudent(c *gin.Context) {
	var query services.SearchStudentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.sendResponse(c, http.StatusBadRequest, "Invalid query parameters.", false, nil)
		return
	}

	students, err := h.profileService.SearchStudents(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Students fetched successfully.", true, gin.H{
		"students": students,
	})
}

// AddCourse creates a course in the admin's department.
func (h *AdminHandler) AddCourse(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	var req services.AddCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if _, err := h.courseService.AddCourse(c.Request.Context(), department, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated, "Course added successfully.", true, nil)
}

// GetAllCourses lists the admin department's courses.
func (h *AdminHandler) GetAllCourses(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	courses, err := h.courseService.ListCourses(c.Request.Context(), department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Courses fetched successfully.", true, gin.H{
		"courses": courses,
	})
}

// GetFacultiesByCourse lists the faculty assigned to a course.
func (h *AdminHandler) GetFacultiesByCourse(c *gin.Context) {
	courseID := h.parseUintQuery(c, "courseId")
	if courseID == 0 {
		return
	}

	faculties, err := h.courseService.GetFacultiesByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Faculties fetched successfully.", true, gin.H{
		"faculties": faculties,
	})
}

// GetAllFaculties lists the admin department's faculty.
func (h *AdminHandler) GetAllFaculties(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	faculties, err := h.profileService.ListFacultyByDepartment(c.Request.Context(), department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Faculties fetched successfully.", true, gin.H{
		"faculties": faculties,
	})
}

// AssignCourseToFaculty adds a faculty to a course's teaching list.
func (h *AdminHandler) AssignCourseToFaculty(c *gin.Context) {
	courseID := h.parseUintQuery(c, "courseId")
	if courseID == 0 {
		return
	}
	facultyID := h.parseUintQuery(c, "facultyId")
	if facultyID == 0 {
		return
	}

	if _, err := h.courseService.AssignFaculty(c.Request.Context(), courseID, facultyID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Course assigned to faculty successfully.", true, nil)
}

// RemoveFacultyFromCourse removes a faculty from a course's teaching list.
func (h *AdminHandler) RemoveFacultyFromCourse(c *gin.Context) {
	courseID := h.parseUintQuery(c, "courseId")
	if courseID == 0 {
		return
	}
	facultyID := h.parseUintQuery(c, "facultyId")
	if facultyID == 0 {
		return
	}

	if _, err := h.courseService.RemoveFaculty(c.Request.Context(), courseID, facultyID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Faculty removed from course successfully.", true, nil)
}

// AssignTg marks a faculty as teacher guardian.
func (h *AdminHandler) AssignTg(c *gin.Context) {
	facultyID := h.parseUintQuery(c, "facultyId")
	if facultyID == 0 {
		return
	}

	if _, err := h.tgService.AssignTG(c.Request.Context(), facultyID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "TG assigned successfully.", true, nil)
}

// UnassignTg clears a faculty's teacher guardian flag.
func (h *AdminHandler) UnassignTg(c *gin.Context) {
	facultyID := h.parseUintQuery(c, "facultyId")
	if facultyID == 0 {
		return
	}

	if _, err := h.tgService.UnassignTG(c.Request.Context(), facultyID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "TG unassigned successfully.", true, nil)
}

// AssignStudentToTG links one student to a teacher guardian.
func (h *AdminHandler) AssignStudentToTG(c *gin.Context) {
	tgID := h.parseUintQuery(c, "tgId")
	if tgID == 0 {
		return
	}
	studentID := h.parseUintQuery(c, "studentId")
	if studentID == 0 {
		return
	}

	if err := h.tgService.AssignStudentToTG(c.Request.Context(), tgID, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Student assigned to TG successfully.", true, nil)
}

// AssignStudentsToTG links a batch of students to a teacher guardian.
func (h *AdminHandler) AssignStudentsToTG(c *gin.Context) {
	tgID := h.parseUintQuery(c, "tgId")
	if tgID == 0 {
		return
	}

	var req services.AssignStudentsToTGRequest
	if !h.bindJSON(c, &req) {
		return
	}

	count, err := h.tgService.AssignStudentsToTG(c.Request.Context(), tgID, req.StudentIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK,
		fmt.Sprintf("%d students assigned to TG successfully.", count), true, nil)
}

// GetTg lists the teacher guardians of the admin's department.
func (h *AdminHandler) GetTg(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	tg, err := h.tgService.ListTGs(c.Request.Context(), department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "TG fetched successfully.", true, gin.H{
		"tg": tg,
	})
}

// UpsertTimetable replaces the weekly schedule of a (semester, section)
// scope within the admin's department.
func (h *AdminHandler) UpsertTimetable(c *gin.Context) {
	department, ok := h.callerDepartment(c)
	if !ok {
		return
	}

	var req services.UpsertTimetableRequest
	if !h.bindJSON(c, &req) {
		return
	}

	timetable, err := h.attendanceService.UpsertTimetable(c.Request.Context(), department, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "Timetable saved successfully.", true, gin.H{
		"timetable": timetable,
	})
}

// PublishNotice creates a notice with an optional PDF attachment.
func (h *AdminHandler) PublishNotice(c *gin.Context) {
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
func (h *AdminHandler) GetNotices(c *gin.Context) {
	notices, err := h.publishingService.ListNotices(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "", true, gin.H{
		"notices": notices,
	})
}
