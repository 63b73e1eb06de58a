package segmentation

import (
	"unicode/utf8"

	"github.com/jonathan/application-tracker/internal/patterns"
	"github.com/jonathan/application-tracker/internal/types"
)

const (
	maxJobTitleLineLen = 80
	maxNameLineLen     = 50

	// Resume headers often mix name and contact lines that match no single pattern,
	// so short lines near the top of the run are treated as header content.
	earlyHeaderLines  = 4
	maxEarlyHeaderLen = 60
)

// IsHeaderContent reports whether a line looks like contact or identity metadata.
func IsHeaderContent(line string) bool {
	switch {
	case patterns.Email.MatchString(line),
		patterns.Phone.MatchString(line),
		patterns.StreetAddress.MatchString(line),
		patterns.SocialURL.MatchString(line),
		patterns.CityState.MatchString(line),
		patterns.PostalCode.MatchString(line):
		return true
	}

	length := utf8.RuneCountInString(line)
	if length < maxJobTitleLineLen && patterns.RoleKeyword.MatchString(line) {
		return true
	}
	return length < maxNameLineLen && !patterns.Digits.MatchString(line) && patterns.PersonalName.MatchString(line)
}

// isEarlyHeaderLine applies the top-of-document bias. A short summary sentence in the
// first few lines is a known false positive of this rule.
func isEarlyHeaderLine(position int, line string) bool {
	return position < earlyHeaderLines &&
		utf8.RuneCountInString(line) < maxEarlyHeaderLen &&
		!patterns.SummaryOpener.MatchString(line)
}

// SeparateHeaderSummary splits the lines that precede the first section header into a
// header section and a summary section. Each is emitted only when non-empty, header first.
func SeparateHeaderSummary(run []types.Line) []types.Section {
	var header, summary []types.Line
	for i, line := range run {
		if IsHeaderContent(line.Text) || isEarlyHeaderLine(i, line.Text) {
			header = append(header, line)
		} else {
			summary = append(summary, line)
		}
	}

	sections := make([]types.Section, 0, 2)
	if len(header) > 0 {
		sections = append(sections, sectionFromLines(types.ChunkTypeHeader, header))
	}
	if len(summary) > 0 {
		sections = append(sections, sectionFromLines(types.ChunkTypeSummary, summary))
	}
	return sections
}

func sectionFromLines(chunkType types.ChunkType, lines []types.Line) types.Section {
	return types.Section{
		Type:      chunkType,
		StartLine: lines[0].Index,
		EndLine:   lines[len(lines)-1].Index,
		Lines:     lines,
	}
}
