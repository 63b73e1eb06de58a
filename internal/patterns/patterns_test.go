package patterns

import (
	"testing"

	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMatchSectionHeader(t *testing.T) {
	tests := []struct {
		line     string
		expected types.ChunkType
		ok       bool
	}{
		{"SUMMARY", types.ChunkTypeSummary, true},
		{"Professional Summary:", types.ChunkTypeSummary, true},
		{"About Me", types.ChunkTypeSummary, true},
		{"Technical Skills", types.ChunkTypeSkills, true},
		{"## Skills", types.ChunkTypeSkills, true},
		{"Work Experience", types.ChunkTypeExperienceSection, true},
		{"EMPLOYMENT HISTORY", types.ChunkTypeExperienceSection, true},
		{"Education", types.ChunkTypeEducation, true},
		{"Selected Projects:", types.ChunkTypeProjects, true},
		{"Certifications", types.ChunkTypeCertifications, true},
		{"Volunteer Experience", types.ChunkTypeOther, true},
		{"Experience building distributed systems", "", false},
		{"Jane Doe", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := MatchSectionHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestContactPatterns(t *testing.T) {
	assert.True(t, Email.MatchString("jane.doe@example.com"))
	assert.True(t, Phone.MatchString("(555) 123-4567"))
	assert.True(t, Phone.MatchString("+1 555.123.4567"))
	assert.True(t, StreetAddress.MatchString("123 Main Street"))
	assert.True(t, SocialURL.MatchString("linkedin.com/in/janedoe"))
	assert.True(t, CityState.MatchString("San Francisco, CA"))
	assert.True(t, PostalCode.MatchString("94105"))
	assert.True(t, PersonalName.MatchString("Jane Q. Doe"))
	assert.False(t, PersonalName.MatchString("Jane"))
	assert.True(t, SummaryOpener.MatchString("Experienced engineer with a focus on reliability"))
	assert.False(t, SummaryOpener.MatchString("Jane Doe"))
}

func TestSocialURL_XHostIsAnchored(t *testing.T) {
	assert.True(t, SocialURL.MatchString("x.com/janedoe"))
	assert.True(t, SocialURL.MatchString("Jane Doe | x.com/janedoe"))
	assert.False(t, SocialURL.MatchString("Shipping at fedex.com/careers"))
	assert.False(t, SocialURL.MatchString("Worked on dropbox.com/teams"))
}

func TestDateRange(t *testing.T) {
	matches := []string{
		"Senior Engineer at Acme Corp 2019-2022",
		"Jan 2020 - Present",
		"March 2018 – June 2021",
		"01/2019 to 12/2020",
		"2015 - current",
	}
	for _, s := range matches {
		assert.True(t, DateRange.MatchString(s), s)
	}

	assert.False(t, DateRange.MatchString("Reduced latency by 40%"))
	assert.False(t, DateRange.MatchString("Shipped release 2019"))
}

func TestJobHeaderPatterns(t *testing.T) {
	assert.True(t, TitleCasedJobTitle.MatchString("Senior Software Engineer"))
	assert.True(t, TitleCasedJobTitle.MatchString("Product Manager, Payments"))
	assert.False(t, TitleCasedJobTitle.MatchString("Led migration to cloud"))

	assert.True(t, RoleKeyword.MatchString("backend developer"))
	assert.True(t, CompanyIndicator.MatchString("Developer at Globex"))
	assert.True(t, CompanyIndicator.MatchString("Initech Inc."))
	assert.False(t, CompanyIndicator.MatchString("Reduced latency by 40%"))
}

func TestStripBullet(t *testing.T) {
	tests := []struct {
		line     string
		expected string
		bullet   bool
	}{
		{"- Led migration to cloud", "Led migration to cloud", true},
		{"• Reduced latency", "Reduced latency", true},
		{"· Built APIs", "Built APIs", true},
		{"* Shipped", "Shipped", true},
		{"+ Hired", "Hired", true},
		{"Wrote docs", "Wrote docs", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := StripBullet(tt.line)
		assert.Equal(t, tt.expected, got)
		assert.Equal(t, tt.bullet, ok)
	}
}

func TestVocabulariesAreCopies(t *testing.T) {
	terms := TechnologyTerms()
	terms[0] = "mutated"
	assert.NotEqual(t, "mutated", TechnologyTerms()[0])

	tags := ActionTags()
	tags[0].Tag = "mutated"
	assert.Equal(t, "leadership", ActionTags()[0].Tag)
}
