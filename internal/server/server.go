// Package server exposes the conversion pipeline over HTTP: POST a PDF to
// /v1/convert and receive Markdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/structura"
	"github.com/tsawler/structura/extract"
	"github.com/tsawler/structura/markdown"
)

// Config holds the HTTP service settings. It is YAML-loadable so the same
// file can configure the CLI's serve command.
type Config struct {
	// Addr is the listen address
	Addr string `yaml:"addr"`

	// MaxUploadSize caps the accepted request body, in bytes
	MaxUploadSize int64 `yaml:"max_upload_size"`

	// Frontmatter prepends YAML frontmatter to converted output
	Frontmatter bool `yaml:"frontmatter"`

	// Dialect is the target Markdown dialect
	Dialect string `yaml:"dialect"`
}

// DefaultConfig returns sensible defaults for the service.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		MaxUploadSize: 50 << 20,
		Frontmatter:   false,
		Dialect:       markdown.DialectGFM,
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading server config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing server config %s: %w", path, err)
	}
	return config, nil
}

// Server is the HTTP conversion service.
type Server struct {
	config Config
	logger *slog.Logger
	router *chi.Mux
}

// New creates a server. A nil logger falls back to slog.Default.
func New(config Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: config,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/convert", s.handleConvert)
	s.router = r

	return s
}

// Handler returns the HTTP handler, for mounting and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

// handleConvert converts an uploaded PDF to Markdown. The PDF arrives as
// the raw request body, or as the multipart field "file". Invalid PDFs map
// to 400, pipeline failures to 422.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(r)
	if err != nil {
		s.logger.Warn("rejected upload", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, warnings, err := structura.OpenBytes(data).
		WithLogger(s.logger).
		Document()
	if err != nil {
		status := http.StatusUnprocessableEntity
		var fileErr *extract.InvalidFileError
		if errors.As(err, &fileErr) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("conversion failed", "status", status, "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	rendererConfig := markdown.Config{
		IncludeFrontmatter: s.config.Frontmatter,
		Dialect:            s.config.Dialect,
	}
	output, err := markdown.NewRendererWithConfig(rendererConfig).Render(doc)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if docType, ok := doc.Metadata["document_type"].(string); ok {
		w.Header().Set("X-Document-Type", docType)
	}
	if confidence, ok := doc.Metadata["confidence"].(float64); ok {
		w.Header().Set("X-Document-Confidence", fmt.Sprintf("%.2f", confidence))
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, output)

	s.logger.Info("converted upload",
		"bytes_in", len(data), "bytes_out", len(output), "warnings", len(warnings))
}

// readUpload returns the PDF bytes from the request: the multipart "file"
// field when the request is multipart, the raw body otherwise.
func (s *Server) readUpload(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.config.MaxUploadSize)

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(contentType, "multipart/") {
		if err := r.ParseMultipartForm(s.config.MaxUploadSize); err != nil {
			return nil, fmt.Errorf("parsing multipart form: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing multipart field %q: %w", "file", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return data, nil
}
