package segmentation

import (
	"strings"
	"testing"

	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linesFrom(texts ...string) []types.Line {
	lines := make([]types.Line, len(texts))
	for i, text := range texts {
		lines[i] = types.Line{Index: i + 1, Text: text}
	}
	return lines
}

func TestConvertSections_SkillsSplitting(t *testing.T) {
	chunks := ConvertSections([]types.Section{{
		Type:  types.ChunkTypeSkills,
		Title: "Skills",
		Lines: linesFrom("Python, Java; React"),
	}})

	require.Len(t, chunks, 3)
	expected := []string{"Python", "Java", "React"}
	for i, chunk := range chunks {
		assert.Equal(t, types.ChunkTypeSkills, chunk.Type)
		assert.Equal(t, expected[i], chunk.Text)
		assert.Equal(t, i+1, chunk.Order)
		require.NotEmpty(t, chunk.Tags)
		assert.Equal(t, strings.ToLower(expected[i]), chunk.Tags[0])
	}
}

func TestConvertSections_SkillsMultiWordTag(t *testing.T) {
	chunks := ConvertSections([]types.Section{{
		Type:  types.ChunkTypeSkills,
		Lines: linesFrom("• Machine Learning", "• Distributed Systems"),
	}})

	require.Len(t, chunks, 2)
	assert.Equal(t, "Machine Learning", chunks[0].Text)
	assert.Contains(t, chunks[0].Tags, "machine-learning")
	assert.Contains(t, chunks[0].Tags, "machine learning")
	assert.Contains(t, chunks[1].Tags, "distributed-systems")
}

func TestConvertSections_SkillsSingleFragmentStaysWhole(t *testing.T) {
	chunks := ConvertSections([]types.Section{{
		Type:  types.ChunkTypeSkills,
		Lines: linesFrom("Comfortable across the stack"),
	}})

	require.Len(t, chunks, 1)
	assert.Equal(t, "Comfortable across the stack", chunks[0].Text)
	assert.NotContains(t, chunks[0].Tags, "comfortable-across-the-stack")
}

func TestConvertSections_SkillsDropsOverlongFragments(t *testing.T) {
	long := "a very long description of tooling experience that keeps going well past any reasonable skill name length limit"
	chunks := ConvertSections([]types.Section{{
		Type:  types.ChunkTypeSkills,
		Lines: linesFrom("Go, Rust, " + long),
	}})

	require.Len(t, chunks, 2)
	assert.Equal(t, "Go", chunks[0].Text)
	assert.Equal(t, "Rust", chunks[1].Text)
}

func TestConvertSections_ExperienceHeaderAndBullets(t *testing.T) {
	chunks := ConvertSections([]types.Section{{
		Type: types.ChunkTypeExperienceSection,
		Lines: linesFrom(
			"Senior Engineer at Acme Corp 2019-2022",
			"- Led migration to cloud",
			"- Reduced latency by 40%",
		),
	}})

	require.Len(t, chunks, 3)
	assert.Equal(t, types.ChunkTypeExperienceSection, chunks[0].Type)
	assert.Equal(t, "Senior Engineer at Acme Corp 2019-2022", chunks[0].Text)
	assert.Equal(t, types.ChunkTypeExperienceBullet, chunks[1].Type)
	assert.Equal(t, "Led migration to cloud", chunks[1].Text)
	assert.Equal(t, types.ChunkTypeExperienceBullet, chunks[2].Type)
	assert.Equal(t, "Reduced latency by 40%", chunks[2].Text)
	assert.Contains(t, chunks[1].Tags, "leadership")
}

func TestConvertSections_ExperienceImplicitBullets(t *testing.T) {
	chunks := ConvertSections([]types.Section{{
		Type: types.ChunkTypeExperienceSection,
		Lines: linesFrom(
			"Backend Developer",
			"Globex Inc. | Jan 2018 - Dec 2019",
			"Built the billing pipeline",
			"•",
		),
	}})

	require.Len(t, chunks, 3)
	assert.Equal(t, types.ChunkTypeExperienceSection, chunks[0].Type)
	assert.Equal(t, types.ChunkTypeExperienceSection, chunks[1].Type)
	assert.Equal(t, types.ChunkTypeExperienceBullet, chunks[2].Type)
	assert.Equal(t, "Built the billing pipeline", chunks[2].Text)
}

func TestConvertSections_DateRangeRoutesOtherTypesLineByLine(t *testing.T) {
	chunks := ConvertSections([]types.Section{{
		Type:  types.ChunkTypeEducation,
		Lines: linesFrom("B.S. Computer Science, State University 2012-2016", "Graduated with honors"),
	}})

	require.Len(t, chunks, 2)
	assert.Equal(t, types.ChunkTypeExperienceSection, chunks[0].Type)
	assert.Equal(t, types.ChunkTypeExperienceBullet, chunks[1].Type)
}

func TestConvertSections_OtherTypesMerge(t *testing.T) {
	chunks := ConvertSections([]types.Section{{
		Type:  types.ChunkTypeCertifications,
		Lines: linesFrom("AWS Solutions Architect", "Certified Kubernetes Administrator"),
	}})

	require.Len(t, chunks, 1)
	assert.Equal(t, types.ChunkTypeCertifications, chunks[0].Type)
	assert.Equal(t, "AWS Solutions Architect Certified Kubernetes Administrator", chunks[0].Text)
	assert.Contains(t, chunks[0].Tags, "aws")
	assert.Contains(t, chunks[0].Tags, "kubernetes")
}

func TestConvertSections_HeaderAndSummaryMerge(t *testing.T) {
	chunks := ConvertSections([]types.Section{
		{Type: types.ChunkTypeHeader, Lines: linesFrom("Jane Doe", "jane@example.com")},
		{Type: types.ChunkTypeSummary, Lines: linesFrom("Backend engineer.", "Loves Go and mentoring.")},
	})

	require.Len(t, chunks, 2)
	assert.Equal(t, "Jane Doe jane@example.com", chunks[0].Text)
	assert.Contains(t, chunks[0].Tags, "email")
	assert.Equal(t, "Backend engineer. Loves Go and mentoring.", chunks[1].Text)
	assert.Contains(t, chunks[1].Tags, "mentoring")
	assert.Contains(t, chunks[1].Tags, "go")
}

func TestConvertSections_EmptySectionsSkipped(t *testing.T) {
	chunks := ConvertSections([]types.Section{
		{Type: types.ChunkTypeSkills, Title: "SKILLS"},
		{Type: types.ChunkTypeSummary, Lines: []types.Line{{Index: 1, Text: "   "}}},
		{Type: types.ChunkTypeOther, Lines: linesFrom("Chess")},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, 1, chunks[0].Order)
}

func TestConvertSections_OrderSharedAcrossSections(t *testing.T) {
	chunks := ConvertSections([]types.Section{
		{Type: types.ChunkTypeSkills, Lines: linesFrom("Go, Rust")},
		{Type: types.ChunkTypeExperienceSection, Lines: linesFrom("Engineer at Initech 2020-2021", "- Shipped")},
	})

	require.Len(t, chunks, 4)
	for i, chunk := range chunks {
		assert.Equal(t, i+1, chunk.Order)
		assert.Equal(t, types.ProvenanceRuleBased, chunk.Provenance)
	}
}

func TestIsJobHeaderLine(t *testing.T) {
	assert.True(t, IsJobHeaderLine("Senior Engineer at Acme Corp 2019-2022"))
	assert.True(t, IsJobHeaderLine("Staff Software Engineer"))
	assert.True(t, IsJobHeaderLine("data engineer at globex"))
	assert.False(t, IsJobHeaderLine("Reduced latency by 40%"))
	assert.False(t, IsJobHeaderLine("Led migration to cloud"))
}
