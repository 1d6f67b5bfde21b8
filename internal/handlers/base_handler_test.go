package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campus-erp/records-service/internal/utils"
)

func TestLocalFileName(t *testing.T) {
	t.Run("strips directory parts", func(t *testing.T) {
		name := localFileName("../../etc/passwd")
		if strings.Contains(name, "..") || strings.Contains(name, "/") {
			t.Errorf("name %q still carries path parts", name)
		}
		if !strings.HasSuffix(name, "-passwd") {
			t.Errorf("name %q should end with the base filename", name)
		}
	})

	t.Run("falls back on pathological names", func(t *testing.T) {
		for _, raw := range []string{"", ".", "/", "../.."} {
			name := localFileName(raw)
			if strings.Contains(name, "/") || strings.Contains(name, "..") {
				t.Errorf("localFileName(%q) = %q escapes the upload dir", raw, name)
			}
		}
	})

	t.Run("repeated names stay unique", func(t *testing.T) {
		if localFileName("notice.pdf") == localFileName("notice.pdf") {
			t.Error("two uploads of the same filename must not collide")
		}
	})
}

func TestBaseHandler_SaveUploadedFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBaseHandler(utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	uploadDir := t.TempDir()

	newUploadContext := func(t *testing.T, filename string) *gin.Context {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("pdf", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
			t.Fatalf("write part: %v", err)
		}
		writer.Close()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/add-notice", &body)
		c.Request.Header.Set("Content-Type", writer.FormDataContentType())
		return c
	}

	t.Run("traversal filename stays inside the upload dir", func(t *testing.T) {
		c := newUploadContext(t, "../outside.pdf")

		path, ok := handler.saveUploadedFile(c, "pdf", uploadDir)
		if !ok || path == "" {
			t.Fatal("upload should succeed")
		}
		if filepath.Dir(path) != uploadDir {
			t.Errorf("file stored at %q, outside %q", path, uploadDir)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stored file missing: %v", err)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(uploadDir), "outside.pdf")); err == nil {
			t.Error("file escaped the upload dir")
		}
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/add-notice", nil)

		path, ok := handler.saveUploadedFile(c, "pdf", uploadDir)
		if !ok {
			t.Fatal("absent file must not fail the request")
		}
		if path != "" {
			t.Errorf("expected empty path, got %q", path)
		}
	})
}
