package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-erp/records-service/internal/services"
	"github.com/campus-erp/records-service/internal/utils"
)

// StudentHandler serves the student self-service surface.
type StudentHandler struct {
	BaseHandler
	authService       services.AuthService
	publishingService services.PublishingService
	profileService    services.ProfileService
}

func NewStudentHandler(sm services.ServiceManager, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:       NewBaseHandler(logger),
		authService:       sm.Auth(),
		publishingService: sm.Publishing(),
		profileService:    sm.Profile(),
	}
}

// Register activates a pre-enrolled student account.
func (h *StudentHandler) Register(c *gin.Context) {
	var req services.RegisterStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.authService.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusCreated,
		fmt.Sprintf("Student with URN %s registered successfully.", student.URN), true, nil)
}

// Login authenticates a student.
func (h *StudentHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginStudent(c.Request.Context(), req)
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
func (h *StudentHandler) ChangePassword(c *gin.Context) {
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

// AddDetails files the caller's one-time personal record.
func (h *StudentHandler) AddDetails(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.StudentDetailsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	details, svcErr := h.profileService.AddStudentDetails(c.Request.Context(), identity, req)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusCreated, "Details added successfully.", true, gin.H{
		"details": details,
	})
}

// FetchBasicDetails returns the caller's enrollment record.
func (h *StudentHandler) FetchBasicDetails(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	student, svcErr := h.profileService.GetBasicDetails(c.Request.Context(), identity.ID)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Student fetched successfully.", true, gin.H{
		"student": student,
	})
}

// GetDetails returns the caller's extended personal record.
func (h *StudentHandler) GetDetails(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	details, svcErr := h.profileService.GetStudentDetails(c.Request.Context(), identity.ID)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Details fetched successfully.", true, gin.H{
		"details": details,
	})
}

// UpdateDetails overwrites the caller's extended personal record.
func (h *StudentHandler) UpdateDetails(c *gin.Context) {
	identity, err := IdentityFromContext(c)
	if err != nil {
		h.sendResponse(c, http.StatusUnauthorized, "User not authenticated.", false, nil)
		return
	}

	var req services.StudentDetailsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	details, svcErr := h.profileService.UpdateStudentDetails(c.Request.Context(), identity.ID, req)
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	h.sendResponse(c, http.StatusOK, "Details updated successfully.", true, gin.H{
		"details": details,
	})
}

// GetNotices lists notices, newest first.
func (h *StudentHandler) GetNotices(c *gin.Context) {
	notices, err := h.publishingService.ListNotices(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendResponse(c, http.StatusOK, "", true, gin.H{
		"notices": notices,
	})
}
