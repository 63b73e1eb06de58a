package segmentation

import (
	"sort"
	"testing"

	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
San Francisco, CA
Experienced backend engineer focused on reliable distributed systems and developer tooling.

SKILLS
Python, Java; React

EXPERIENCE
Senior Engineer at Acme Corp 2019-2022
- Led migration to cloud
- Reduced latency by 40%

EDUCATION
B.S. Computer Science, State University 2012-2016
`

func TestSplitLines(t *testing.T) {
	lines := SplitLines("  a \r\n\r\n b\rc\n\t\n")

	assert.Equal(t, []types.Line{
		{Index: 0, Text: "a"},
		{Index: 1, Text: "b"},
		{Index: 2, Text: "c"},
	}, lines)
}

func TestSplitLines_Empty(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("   \n\n "))
}

func TestDetectSectionHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected types.ChunkType
		ok       bool
	}{
		{"table skills", "SKILLS", types.ChunkTypeSkills, true},
		{"table experience with colon", "Professional Experience:", types.ChunkTypeExperienceSection, true},
		{"table education", "Education", types.ChunkTypeEducation, true},
		{"fallback skill keyword", "Key Skills Overview", types.ChunkTypeSkills, true},
		{"fallback work keyword with colon", "Relevant Work:", types.ChunkTypeExperienceSection, true},
		{"fallback project bucket", "Research Projects", types.ChunkTypeExperienceSection, true},
		{"job line is not a header", "Senior Engineer at Acme", "", false},
		{"punctuation disqualifies", "Experience with Go, Rust.", "", false},
		{"lowercase without colon", "jane doe", "", false},
		{"title case without keyword", "Jane Doe", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectSectionHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectSections_SampleResume(t *testing.T) {
	sections := DetectSections(SplitLines(sampleResume))
	require.Len(t, sections, 5)

	assert.Equal(t, types.ChunkTypeHeader, sections[0].Type)
	assert.Len(t, sections[0].Lines, 3)
	assert.Equal(t, types.ChunkTypeSummary, sections[1].Type)
	assert.Len(t, sections[1].Lines, 1)

	assert.Equal(t, types.ChunkTypeSkills, sections[2].Type)
	assert.Equal(t, "SKILLS", sections[2].Title)
	assert.Equal(t, 4, sections[2].StartLine)
	assert.Equal(t, 5, sections[2].EndLine)

	assert.Equal(t, types.ChunkTypeExperienceSection, sections[3].Type)
	assert.Equal(t, 6, sections[3].StartLine)
	assert.Equal(t, 9, sections[3].EndLine)
	assert.Len(t, sections[3].Lines, 3)

	assert.Equal(t, types.ChunkTypeEducation, sections[4].Type)
	assert.Equal(t, 11, sections[4].EndLine)
}

func TestDetectSections_EmptySectionBetweenHeaders(t *testing.T) {
	sections := DetectSections(SplitLines("SKILLS\nEXPERIENCE\nSenior Engineer at Acme 2019-2020"))
	require.Len(t, sections, 2)

	assert.Equal(t, types.ChunkTypeSkills, sections[0].Type)
	assert.Empty(t, sections[0].Lines)
	assert.Equal(t, 0, sections[0].EndLine)
	assert.Equal(t, types.ChunkTypeExperienceSection, sections[1].Type)
}

func TestDetectSections_NoHeaders(t *testing.T) {
	text := "this document has no structure whatsoever and just keeps rambling on about nothing in particular"
	sections := DetectSections(SplitLines(text))

	require.Len(t, sections, 1)
	assert.Equal(t, types.ChunkTypeSummary, sections[0].Type)
}

func TestDetectSections_CoverageProperty(t *testing.T) {
	docs := []string{
		sampleResume,
		"SKILLS\nEXPERIENCE\nSenior Engineer at Acme 2019-2020",
		"Jane Doe\nI build things.\nAnother long line of prose that should land in the summary section of the document.\nSkills:\nGo",
		"one line",
		"Summary\nWork Experience\n- did a thing\nProjects\nside project\nCertifications\nCKA",
	}

	for _, doc := range docs {
		lines := SplitLines(doc)
		sections := DetectSections(lines)

		var covered []int
		lastTitled := -1
		for _, s := range sections {
			covered = append(covered, s.LineIndices()...)
			if s.Title != "" {
				assert.Greater(t, s.StartLine, lastTitled, "titled sections must be in document order")
				lastTitled = s.StartLine
			}
			assert.LessOrEqual(t, s.StartLine, s.EndLine)
		}

		sort.Ints(covered)
		expected := make([]int, len(lines))
		for i := range expected {
			expected[i] = i
		}
		assert.Equal(t, expected, covered, "every line covered exactly once for %q", doc)
	}
}
