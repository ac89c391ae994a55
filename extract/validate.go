package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfMagic is the mandatory file header.
const pdfMagic = "%PDF-"

// InvalidFileError reports input rejected before or during PDF parsing:
// not a PDF, too large, or structurally corrupt. Path is empty for
// in-memory input.
type InvalidFileError struct {
	Path   string
	Reason string
}

func (e *InvalidFileError) Error() string {
	if e.Path == "" {
		return "invalid PDF: " + e.Reason
	}
	return fmt.Sprintf("invalid PDF %s: %s", e.Path, e.Reason)
}

// Validator checks PDF input before extraction: existence, size cap,
// extension, magic header, and structural validation via pdfcpu.
type Validator struct {
	config Config
}

// NewValidator creates a validator with default configuration
func NewValidator() *Validator {
	return NewValidatorWithConfig(DefaultConfig())
}

// NewValidatorWithConfig creates a validator with custom configuration
func NewValidatorWithConfig(config Config) *Validator {
	// pdfcpu writes a config directory on first use unless disabled.
	api.DisableConfigDir()
	return &Validator{config: config}
}

// ValidateFile checks that path names a readable, well-formed PDF file.
// Rejections are *InvalidFileError values.
func (v *Validator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &InvalidFileError{Path: path, Reason: "file does not exist"}
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return &InvalidFileError{Path: path, Reason: "path is a directory"}
	}
	if info.Size() == 0 {
		return &InvalidFileError{Path: path, Reason: "file is empty"}
	}
	if v.config.MaxFileSize > 0 && info.Size() > v.config.MaxFileSize {
		return &InvalidFileError{
			Path:   path,
			Reason: fmt.Sprintf("file size %d exceeds limit %d", info.Size(), v.config.MaxFileSize),
		}
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return &InvalidFileError{Path: path, Reason: "not a .pdf file"}
	}
	if err := v.checkHeader(path); err != nil {
		return err
	}
	if err := api.ValidateFile(path, nil); err != nil {
		return &InvalidFileError{
			Path:   path,
			Reason: fmt.Sprintf("structural validation failed: %v", err),
		}
	}
	return nil
}

// ValidateBytes checks an in-memory PDF body.
func (v *Validator) ValidateBytes(data []byte) error {
	if len(data) == 0 {
		return &InvalidFileError{Reason: "empty body"}
	}
	if v.config.MaxFileSize > 0 && int64(len(data)) > v.config.MaxFileSize {
		return &InvalidFileError{
			Reason: fmt.Sprintf("body size %d exceeds limit %d", len(data), v.config.MaxFileSize),
		}
	}
	if !bytes.HasPrefix(data, []byte(pdfMagic)) {
		return &InvalidFileError{Reason: "missing %PDF- header"}
	}
	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		return &InvalidFileError{
			Reason: fmt.Sprintf("structural validation failed: %v", err),
		}
	}
	return nil
}

// checkHeader verifies the %PDF- magic at the start of the file.
func (v *Validator) checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return &InvalidFileError{Path: path, Reason: "file too short for a PDF header"}
	}
	if string(header) != pdfMagic {
		return &InvalidFileError{Path: path, Reason: "missing %PDF- header"}
	}
	return nil
}
