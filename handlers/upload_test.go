package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mohabnada13/nory/config"
	"github.com/mohabnada13/nory/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func setupUploadTest(t *testing.T, presigner *storage.Presigner) *gin.Engine {
	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	handler := NewUploadHandler(presigner, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/uploads", func(c *gin.Context) {
		c.Set("user_id", 42)
		handler.CreateUploadURL(c)
	})

	return router
}

func testPresigner(t *testing.T) *storage.Presigner {
	presigner, err := storage.NewPresigner(config.AWSConfig{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "eu-central-1",
		Bucket:          "nory-uploads",
		BasePath:        "Nor/",
	})
	if err != nil {
		t.Fatalf("Failed to create presigner: %v", err)
	}
	return presigner
}

func TestUploadHandler_CreateUploadURL_Success(t *testing.T) {
	router := setupUploadTest(t, testPresigner(t))

	body := `{"fileName": "photo.png", "contentType": "image/png"}`
	req := httptest.NewRequest("POST", "/uploads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		Key       string `json:"key"`
		UploadURL string `json:"uploadUrl"`
		GetURL    string `json:"getUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success=true")
	}
	if !strings.HasPrefix(resp.Key, "Nor/42/") || !strings.HasSuffix(resp.Key, "_photo.png") {
		t.Errorf("Unexpected object key: %q", resp.Key)
	}
	if !strings.Contains(resp.UploadURL, "X-Amz-Signature") {
		t.Errorf("Expected a presigned upload URL, got %q", resp.UploadURL)
	}
	if !strings.Contains(resp.GetURL, "X-Amz-Signature") {
		t.Errorf("Expected a presigned get URL, got %q", resp.GetURL)
	}
}

func TestUploadHandler_CreateUploadURL_MissingFields(t *testing.T) {
	router := setupUploadTest(t, testPresigner(t))

	tests := []struct {
		name string
		body string
	}{
		{"missing file name", `{"fileName": "", "contentType": "image/png"}`},
		{"missing content type", `{"fileName": "photo.png", "contentType": ""}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/uploads", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestUploadHandler_CreateUploadURL_NotConfigured(t *testing.T) {
	router := setupUploadTest(t, nil)

	body := `{"fileName": "photo.png", "contentType": "image/png"}`
	req := httptest.NewRequest("POST", "/uploads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if !strings.Contains(w.Body.String(), "AWS S3 is not configured") {
		t.Errorf("Expected configuration error, got %s", w.Body.String())
	}
}
