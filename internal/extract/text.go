package extract

import (
	"context"
	"os"
	"regexp"
	"strings"
)

var (
	multiSpace    = regexp.MustCompile(`[ \t\f\v]+`)
	excessBlanks  = regexp.MustCompile(`\n\n\n+`)
	bulletPrefix  = []string{"- ", "* ", "• ", "· "}
	controlGlyphs = strings.NewReplacer("\u00a0", " ", "\u200b", "", "\ufeff", "")
)

// Text reads plain text and markdown files
type Text struct{}

// Extract implements Extractor.
func (Text) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	return string(content), nil
}

// CleanText cleans and normalizes extracted text while preserving line structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = controlGlyphs.Replace(content)

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := excessBlanks.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of inline whitespace. Headings and bullets lose their indentation.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") || isBulletLine(trimmed) {
		return trimmed
	}
	return multiSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	for _, p := range bulletPrefix {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
