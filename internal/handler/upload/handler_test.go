package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zr-chat/relay/internal/service/storage"
)

func setup(t *testing.T, maxSize int64) *chi.Mux {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore err: %v", err)
	}

	r := chi.NewRouter()
	New(store, maxSize).RegisterRoutes(r)
	return r
}

func multipartBody(t *testing.T, field, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("CreateFormFile err: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Write err: %v", err)
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func TestUploadReturnsMetadata(t *testing.T) {
	r := setup(t, 10<<20)
	body, contentType := multipartBody(t, "file", "photo.png", "fakepngdata")

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result struct {
		FileURL  string `json:"fileUrl"`
		FileName string `json:"fileName"`
		FileSize int64  `json:"fileSize"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !strings.HasPrefix(result.FileURL, "/uploads/") || !strings.HasSuffix(result.FileURL, ".png") {
		t.Fatalf("unexpected fileUrl: %q", result.FileURL)
	}
	if result.FileName != "photo.png" || result.FileSize != int64(len("fakepngdata")) {
		t.Fatalf("unexpected metadata: %+v", result)
	}
}

func TestUploadMissingFile(t *testing.T) {
	r := setup(t, 10<<20)
	body, contentType := multipartBody(t, "wrongfield", "photo.png", "data")

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUploadTooLarge(t *testing.T) {
	r := setup(t, 128)
	body, contentType := multipartBody(t, "file", "big.bin", strings.Repeat("x", 4096))

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
