package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDF extracts the text layer of PDF documents page by page
type PDF struct {
	Logger *zap.Logger
}

// Extract implements Extractor.
func (p *PDF) Extract(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	return p.ExtractBytes(ctx, path, content)
}

// ExtractBytes extracts text from in-memory PDF content. Pages that fail to decode are
// skipped with a warning.
func (p *PDF) ExtractBytes(ctx context.Context, name string, content []byte) (string, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &Error{Path: name, Message: "failed to create PDF reader", Cause: err}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := pageText(page)
		if err != nil {
			logger.Warn("failed to extract PDF page", zap.String("path", name), zap.Int("page", i), zap.Error(err))
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// pageText guards against panics raised by malformed content streams.
func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()
	fonts := make(map[string]*pdf.Font)
	return page.GetPlainText(fonts)
}
