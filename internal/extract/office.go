package extract

import (
	"context"

	"github.com/lu4p/cat"
)

// Office extracts text from .docx, .odt and .rtf documents
type Office struct{}

// Extract implements Extractor.
func (Office) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := cat.File(path)
	if err != nil {
		return "", &Error{Path: path, Message: "failed to extract document", Cause: err}
	}
	return text, nil
}
