package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists the elements rendered as their own line
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, dt, dd, td, th, blockquote, pre, div, section, article"

// lineBreak stands in for <br> so it survives whitespace collapsing
const lineBreak = "\u2028"

// HTML extracts readable text from saved web pages such as online resumes or job postings
type HTML struct {
	// Selectors are tried in order to find the main content; the body is used when none match.
	Selectors []string
}

// DefaultSelectors returns standard selectors for resume and posting pages.
func DefaultSelectors() []string {
	return []string{
		".resume",
		"#resume",
		".job-description",
		"#job-description",
		"main",
		"article",
		".content",
		"#content",
	}
}

// Extract implements Extractor.
func (h *HTML) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Path: path, Message: "failed to read file", Cause: err}
	}

	text, err := HTMLText(string(content), h.Selectors...)
	if err != nil {
		return "", &Error{Path: path, Message: "failed to parse HTML", Cause: err}
	}
	return text, nil
}

// HTMLText parses HTML and returns its main text with one line per block element. List items
// are prefixed with a bullet so that downstream segmentation sees them as bullets.
func HTMLText(html string, selectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, script, style, noscript, template, .ad, .cookie-banner").Remove()

	var root *goquery.Selection
	for _, selector := range selectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			root = selection.First()
			break
		}
	}
	if root == nil {
		root = doc.Find("body")
	}

	root.Find("br").ReplaceWithHtml(lineBreak)

	var lines []string
	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Only leaf blocks carry their own text; containers are covered by their children.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		for _, line := range strings.Split(s.Text(), lineBreak) {
			line = strings.Join(strings.Fields(line), " ")
			if line == "" {
				continue
			}
			if goquery.NodeName(s) == "li" {
				line = "• " + line
			}
			lines = append(lines, line)
		}
	})

	if len(lines) == 0 {
		return cleanWhitespace(strings.ReplaceAll(root.Text(), lineBreak, "\n")), nil
	}
	return strings.Join(lines, "\n"), nil
}

// cleanWhitespace trims each line and drops the empty ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
