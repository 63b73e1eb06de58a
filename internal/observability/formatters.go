// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/application-tracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in short lists
	maxItemsToShow = 5
	// maxChunksToShow caps chunk and match listings
	maxChunksToShow = 15
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most width runes
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintJobDescription outputs the keywords and skills the scorer will match against.
func (p *Printer) PrintJobDescription(job *types.JobDescription) {
	if job == nil {
		return
	}

	var sb strings.Builder
	if job.Title != "" || job.Company != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
		sb.WriteString(fmt.Sprintf("Company:  %s\n\n", job.Company))
	}

	writeList(&sb, "Keywords", job.Keywords)
	writeList(&sb, "Required skills", job.RequiredSkills())
	writeList(&sb, "Preferred skills", job.PreferredSkills())

	p.printBox("JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		sb.WriteString(fmt.Sprintf("%s: (none)\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s:\n", label))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintSegmentResult outputs the chunks produced for one document, or its failure.
func (p *Printer) PrintSegmentResult(document string, result types.SegmentResult) {
	title := fmt.Sprintf("SEGMENTED %s", document)
	if !result.Success {
		p.printBox(title, fmt.Sprintf("✗ %s", result.Error))
		return
	}
	if len(result.Chunks) == 0 {
		p.printBox(title, "No chunks found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Chunks: %d\n\n", len(result.Chunks)))

	count := min(len(result.Chunks), maxChunksToShow)
	for i := 0; i < count; i++ {
		c := result.Chunks[i]
		sb.WriteString(fmt.Sprintf("%2d. [%s] %s\n", c.Order, c.Type, c.Text))
		if len(c.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("    tags: %s\n", strings.Join(c.Tags, ", ")))
		}
	}
	if len(result.Chunks) > maxChunksToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(result.Chunks)-maxChunksToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs ranked chunk matches with their scores and hits.
func (p *Printer) PrintMatches(title string, matches []types.ChunkMatch) {
	if len(matches) == 0 {
		p.printBox(title, "No relevant chunks found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matches: %d\n\n", len(matches)))

	count := min(len(matches), maxChunksToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %.2f  [%s]\n", i+1, m.Score, m.Chunk.Type))
		sb.WriteString(fmt.Sprintf("    %s\n", m.Chunk.Text))
		hits := append(append([]string(nil), m.MatchedKeywords...), m.SkillMatches...)
		if len(hits) > 0 {
			sb.WriteString(fmt.Sprintf("    hits: %s\n", strings.Join(dedupe(hits), ", ")))
		}
	}
	if len(matches) > maxChunksToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(matches)-maxChunksToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
