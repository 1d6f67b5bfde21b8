package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/services"
	"github.com/campus-erp/records-service/internal/utils"
)

// HandlerManager owns the role handlers and wires them onto the router.
type HandlerManager struct {
	adminHandler   *AdminHandler
	facultyHandler *FacultyHandler
	studentHandler *StudentHandler
	authMiddleware *JWTAuthMiddleware
	logger         utils.Logger
}

func NewHandlerManager(sm services.ServiceManager, tokens *auth.TokenService, uploadDir string, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		adminHandler:   NewAdminHandler(sm, uploadDir, logger),
		facultyHandler: NewFacultyHandler(sm, uploadDir, logger),
		studentHandler: NewStudentHandler(sm, logger),
		authMiddleware: NewJWTAuthMiddleware(tokens),
		logger:         logger,
	}
}

// SetupRoutes registers every endpoint. Login and register stay public;
// everything else requires a token with the matching role.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "records-service"})
	})
	router.GET("/metrics", MetricsHandler())

	api := router.Group("/api/v1")

	admin := api.Group("/admin")
	{
		admin.POST("/login", hm.adminHandler.Login)
		admin.POST("/register", hm.adminHandler.Register)

		protected := admin.Group("")
		protected.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			protected.PUT("/change-password", hm.adminHandler.ChangePassword)
			protected.POST("/enroll-student", hm.adminHandler.EnrollStudent)
			protected.POST("/enroll-multiple-students", hm.adminHandler.EnrollMultipleStudents)
			protected.POST("/import-students", hm.adminHandler.ImportStudentRoster)
			protected.GET("/students/:department", hm.adminHandler.FetchAllStudents)
			protected.GET("/search-student", hm.adminHandler.SearchStudent)
			protected.POST("/enroll-faculty", hm.adminHandler.EnrollFaculty)
			protected.POST("/enroll-multiple-faculties", hm.adminHandler.EnrollMultipleFaculties)
			protected.POST("/add-course", hm.adminHandler.AddCourse)
			protected.GET("/get-courses", hm.adminHandler.GetAllCourses)
			protected.GET("/get-faculty-by-course", hm.adminHandler.GetFacultiesByCourse)
			protected.GET("/get-faculties", hm.adminHandler.GetAllFaculties)
			protected.PUT("/assign-teacher-to-course", hm.adminHandler.AssignCourseToFaculty)
			protected.PUT("/remove-faculty-from-course", hm.adminHandler.RemoveFacultyFromCourse)
			protected.PUT("/assign-tg", hm.adminHandler.AssignTg)
			protected.PUT("/unassign-tg", hm.adminHandler.UnassignTg)
			protected.PUT("/assign-student-to-tg", hm.adminHandler.AssignStudentToTG)
			protected.PUT("/assign-students-to-tg", hm.adminHandler.AssignStudentsToTG)
			protected.GET("/get-tg", hm.adminHandler.GetTg)
			protected.POST("/upsert-timetable", hm.adminHandler.UpsertTimetable)
			protected.POST("/add-notice", hm.adminHandler.PublishNotice)
			protected.GET("/get-notices", hm.adminHandler.GetNotices)
		}
	}

	faculty := api.Group("/faculty")
	{
		faculty.POST("/register", hm.facultyHandler.Register)
		faculty.POST("/login", hm.facultyHandler.Login)

		protected := faculty.Group("")
		protected.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRole(models.RoleFaculty))
		{
			protected.PATCH("/change-password", hm.facultyHandler.ChangePassword)
			protected.GET("/profile", hm.facultyHandler.GetProfile)
			protected.PATCH("/update-profile", hm.facultyHandler.UpdateProfile)
			protected.POST("/add-course", hm.facultyHandler.AddCourse)
			protected.POST("/add-notice", hm.facultyHandler.PublishNotice)
			protected.GET("/get-notices", hm.facultyHandler.GetNotices)
			protected.POST("/add-assignment", hm.facultyHandler.AddAssignment)
			protected.GET("/get-assignments", hm.facultyHandler.GetAssignments)
			protected.POST("/upload-pyq", hm.facultyHandler.UploadPyq)
			protected.GET("/get-pyqs", hm.facultyHandler.GetPyqsByCourse)
			protected.POST("/mark-attendance", hm.facultyHandler.MarkAttendance)
			protected.GET("/pending-attendance", hm.facultyHandler.GetPendingAttendance)
			protected.GET("/get-timetable", hm.facultyHandler.GetTimetable)
		}
	}

	student := api.Group("/student")
	{
		student.POST("/register", hm.studentHandler.Register)
		student.POST("/login", hm.studentHandler.Login)

		protected := student.Group("")
		protected.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRole(models.RoleStudent))
		{
			protected.PATCH("/change-password", hm.studentHandler.ChangePassword)
			protected.POST("/add-details", hm.studentHandler.AddDetails)
			protected.GET("/fetch-student", hm.studentHandler.FetchBasicDetails)
			protected.GET("/get-details", hm.studentHandler.GetDetails)
			protected.POST("/update-details", hm.studentHandler.UpdateDetails)
			protected.GET("/get-notices", hm.studentHandler.GetNotices)
		}
	}
}
