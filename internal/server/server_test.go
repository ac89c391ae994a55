package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(DefaultConfig(), nil)
}

// samplePDF renders a small single-page PDF and returns its bytes.
func samplePDF(t *testing.T) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(72, 100, "Quarterly Report")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(72, 130, "Revenue grew over the period.")
	pdf.Text(72, 148, "Costs stayed flat.")

	path := filepath.Join(t.TempDir(), "sample.pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing sample pdf: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sample pdf: %v", err)
	}
	return data
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("expected ok body, got %q", rec.Body.String())
	}
}

func TestConvert_RawBody(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", bytes.NewReader(samplePDF(t)))
	req.Header.Set("Content-Type", "application/pdf")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/markdown; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	if rec.Header().Get("X-Document-Type") == "" {
		t.Error("expected X-Document-Type header")
	}
	if rec.Header().Get("X-Document-Confidence") == "" {
		t.Error("expected X-Document-Confidence header")
	}

	body := rec.Body.String()
	if !strings.Contains(body, "# Quarterly Report") {
		t.Errorf("expected heading in output:\n%s", body)
	}
	if !strings.Contains(body, "Revenue grew over the period.") {
		t.Errorf("expected body text in output:\n%s", body)
	}
}

func TestConvert_Multipart(t *testing.T) {
	srv := testServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "sample.pdf")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(samplePDF(t)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Quarterly Report") {
		t.Errorf("expected converted content:\n%s", rec.Body.String())
	}
}

func TestConvert_InvalidPDF(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader("not a pdf at all"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConvert_EmptyBody(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConvert_Frontmatter(t *testing.T) {
	config := DefaultConfig()
	config.Frontmatter = true
	srv := New(config, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", bytes.NewReader(samplePDF(t)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "---\n") {
		t.Errorf("expected frontmatter prefix:\n%s", rec.Body.String())
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	content := "addr: \":9090\"\nfrontmatter: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if config.Addr != ":9090" {
		t.Errorf("expected overridden addr, got %q", config.Addr)
	}
	if !config.Frontmatter {
		t.Error("expected frontmatter enabled")
	}
	// Unset fields keep their defaults.
	if config.MaxUploadSize != DefaultConfig().MaxUploadSize {
		t.Errorf("expected default upload cap, got %d", config.MaxUploadSize)
	}
	if config.Dialect != DefaultConfig().Dialect {
		t.Errorf("expected default dialect, got %q", config.Dialect)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestReadUpload_TooLarge(t *testing.T) {
	config := DefaultConfig()
	config.MaxUploadSize = 16
	srv := New(config, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/convert",
		io.NopCloser(strings.NewReader(strings.Repeat("a", 64))))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized body, got %d", rec.Code)
	}
}
