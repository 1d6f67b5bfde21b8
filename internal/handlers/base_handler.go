package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campus-erp/records-service/internal/services"
	"github.com/campus-erp/records-service/internal/utils"
)

// StatusMissingCredentials is the legacy nonstandard status the admin
// login contract answers with on empty credentials.
const StatusMissingCredentials = 490

// BaseHandler provides common functionality shared by all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// sendResponse writes the flat response envelope every endpoint uses:
// {message, success, ...data}.
func (h *BaseHandler) sendResponse(c *gin.Context, status int, message string, success bool, data gin.H) {
	body := gin.H{
		"message": message,
		"success": success,
	}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// handleServiceError maps service error codes onto HTTP statuses and
// writes the envelope with the service's message.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("unclassified error", "error", err, "path", c.Request.URL.Path)
		h.sendResponse(c, http.StatusInternalServerError, "Internal server error.", false, nil)
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Code {
	case services.ErrCodeValidation, services.ErrCodeBadRequest:
		status = http.StatusBadRequest
	case services.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case services.ErrCodeForbidden:
		status = http.StatusForbidden
	case services.ErrCodeNotFound:
		status = http.StatusNotFound
	case services.ErrCodeConflict:
		status = http.StatusConflict
	case services.ErrCodeMissingCredentials:
		status = StatusMissingCredentials
	case services.ErrCodeInternal:
		h.logger.Error("internal service error", "error", svcErr.Err, "path", c.Request.URL.Path)
	}

	h.sendResponse(c, status, svcErr.Message, false, nil)
}

// parseUintQuery parses a required uint query parameter; on failure it
// writes a 400 and returns 0.
func (h *BaseHandler) parseUintQuery(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		h.sendResponse(c, http.StatusBadRequest, name+" is required.", false, nil)
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		h.sendResponse(c, http.StatusBadRequest, "Invalid "+name+".", false, nil)
		return 0
	}
	return uint(value)
}

// bindJSON binds the request body; on failure it writes a 400.
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.sendResponse(c, http.StatusBadRequest, "Invalid request payload.", false, nil)
		return false
	}
	return true
}

// saveUploadedFile persists an optional multipart file to the upload dir
// and returns its local path, or "" when the request carried no file.
// The stored name is prefixed with a UUID; the client-supplied filename
// is never trusted as a path.
func (h *BaseHandler) saveUploadedFile(c *gin.Context, field, uploadDir string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", true // no file attached
	}
	localPath := filepath.Join(uploadDir, localFileName(file.Filename))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		h.sendResponse(c, http.StatusInternalServerError, "Failed to store the uploaded file.", false, nil)
		return "", false
	}
	return localPath, true
}

// localFileName strips any client-supplied directory parts and prefixes
// a UUID so concurrent uploads of the same name cannot collide.
func localFileName(name string) string {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	return uuid.NewString() + "-" + base
}

// LogRequest logs handler activity with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}
