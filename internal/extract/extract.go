// Package extract turns resume, cover letter and job posting files into plain text for segmentation.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Format identifies a supported source document format
type Format string

// Supported formats
const (
	FormatText   Format = "text"
	FormatHTML   Format = "html"
	FormatPDF    Format = "pdf"
	FormatOffice Format = "office"
)

// ErrUnsupportedFormat is returned for file extensions no extractor handles
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Error represents a failure extracting text from a document
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Extractor converts a document on disk into raw text. An empty string with a nil error is a
// valid outcome; callers treat it as an empty document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

var extensions = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".pdf":      FormatPDF,
	".docx":     FormatOffice,
	".odt":      FormatOffice,
	".rtf":      FormatOffice,
}

// DetectFormat maps a file path to its format by extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := extensions[ext]
	if !ok {
		return "", &Error{Path: path, Message: fmt.Sprintf("extension %q", ext), Cause: ErrUnsupportedFormat}
	}
	return format, nil
}

// ForPath returns the extractor for a file based on its extension.
func ForPath(path string, logger *zap.Logger) (Extractor, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return ForFormat(format, logger), nil
}

// ForFormat returns the extractor for a known format.
func ForFormat(format Format, logger *zap.Logger) Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch format {
	case FormatHTML:
		return &HTML{Selectors: DefaultSelectors()}
	case FormatPDF:
		return &PDF{Logger: logger}
	case FormatOffice:
		return &Office{}
	case FormatText:
		return &Text{}
	default:
		return &Text{}
	}
}

// File extracts and cleans the text of a document, returning it with its metadata.
func File(ctx context.Context, path string, logger *zap.Logger) (string, *Metadata, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	raw, err := ForFormat(format, logger).Extract(ctx, path)
	if err != nil {
		return "", nil, err
	}

	text := CleanText(raw)
	logger.Debug("extracted document",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("chars", len(text)),
	)

	return text, NewMetadata(path, format, text), nil
}
