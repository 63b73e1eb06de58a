package segmentation

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/application-tracker/internal/patterns"
	"github.com/jonathan/application-tracker/internal/types"
)

// maxShortHeaderLen bounds the fallback heuristic for header-like lines.
const maxShortHeaderLen = 50

// SplitLines normalises line endings, trims every line and drops empty ones.
// Surviving lines get a dense 0-based index in document order.
func SplitLines(text string) []types.Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]types.Line, 0, len(raw))
	for _, r := range raw {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" {
			continue
		}
		lines = append(lines, types.Line{Index: len(lines), Text: trimmed})
	}
	return lines
}

// DetectSectionHeader classifies a trimmed line as a section header. The fixed header
// table is consulted first; short title-like lines fall back to keyword containment.
func DetectSectionHeader(line string) (types.ChunkType, bool) {
	if chunkType, ok := patterns.MatchSectionHeader(line); ok {
		return chunkType, true
	}

	if utf8.RuneCountInString(line) >= maxShortHeaderLen || strings.ContainsAny(line, ".,") {
		return "", false
	}
	if !strings.HasSuffix(line, ":") && !patterns.TitleCaseWords.MatchString(line) {
		return "", false
	}

	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "skill"):
		return types.ChunkTypeSkills, true
	case strings.Contains(lower, "experience"), strings.Contains(lower, "work"):
		return types.ChunkTypeExperienceSection, true
	case strings.Contains(lower, "education"), strings.Contains(lower, "project"):
		// Education and projects share the experience bucket in the fallback path.
		return types.ChunkTypeExperienceSection, true
	}
	return "", false
}

// DetectSections groups lines into sections. Lines before the first header are routed
// through SeparateHeaderSummary; every later line belongs to the most recent header.
func DetectSections(lines []types.Line) []types.Section {
	var (
		sections  []types.Section
		preHeader []types.Line
		current   *types.Section
	)

	for _, line := range lines {
		chunkType, isHeader := DetectSectionHeader(line.Text)
		if !isHeader {
			if current == nil {
				preHeader = append(preHeader, line)
			} else {
				current.Lines = append(current.Lines, line)
				current.EndLine = line.Index
			}
			continue
		}

		if current == nil {
			sections = append(sections, SeparateHeaderSummary(preHeader)...)
			preHeader = nil
		} else {
			sections = append(sections, *current)
		}
		current = &types.Section{
			Type:      chunkType,
			Title:     line.Text,
			StartLine: line.Index,
			EndLine:   line.Index,
		}
	}

	if current == nil {
		return append(sections, SeparateHeaderSummary(preHeader)...)
	}
	return append(sections, *current)
}
