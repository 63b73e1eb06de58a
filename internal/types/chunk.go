// Package types provides type definitions for structured data used throughout the application tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ChunkType labels the role a piece of content plays inside a resume or cover letter
type ChunkType string

// Resume chunk types
const (
	ChunkTypeHeader            ChunkType = "header"
	ChunkTypeSummary           ChunkType = "summary"
	ChunkTypeSkills            ChunkType = "skills"
	ChunkTypeExperienceSection ChunkType = "experience_section"
	ChunkTypeExperienceBullet  ChunkType = "experience_bullet"
	ChunkTypeEducation         ChunkType = "education"
	ChunkTypeProjects          ChunkType = "projects"
	ChunkTypeCertifications    ChunkType = "certifications"
	ChunkTypeOther             ChunkType = "other"
)

// Cover letter chunk types
const (
	ChunkTypeCoverLetterIntro       ChunkType = "cover_letter_intro"
	ChunkTypeCoverLetterBody        ChunkType = "cover_letter_body"
	ChunkTypeCoverLetterClosing     ChunkType = "cover_letter_closing"
	ChunkTypeCoverLetterAchievement ChunkType = "cover_letter_achievement"
)

// AllChunkTypes returns every known chunk type, resume types first.
func AllChunkTypes() []ChunkType {
	return []ChunkType{
		ChunkTypeHeader,
		ChunkTypeSummary,
		ChunkTypeSkills,
		ChunkTypeExperienceSection,
		ChunkTypeExperienceBullet,
		ChunkTypeEducation,
		ChunkTypeProjects,
		ChunkTypeCertifications,
		ChunkTypeOther,
		ChunkTypeCoverLetterIntro,
		ChunkTypeCoverLetterBody,
		ChunkTypeCoverLetterClosing,
		ChunkTypeCoverLetterAchievement,
	}
}

// IsResumeType reports whether the type belongs to the resume allowlist.
func (t ChunkType) IsResumeType() bool {
	switch t {
	case ChunkTypeHeader, ChunkTypeSummary, ChunkTypeSkills,
		ChunkTypeExperienceSection, ChunkTypeExperienceBullet,
		ChunkTypeEducation, ChunkTypeProjects, ChunkTypeCertifications,
		ChunkTypeOther:
		return true
	case ChunkTypeCoverLetterIntro, ChunkTypeCoverLetterBody,
		ChunkTypeCoverLetterClosing, ChunkTypeCoverLetterAchievement:
		return false
	}
	return false
}

// IsCoverLetterType reports whether the type is one of the cover letter variants.
func (t ChunkType) IsCoverLetterType() bool {
	switch t {
	case ChunkTypeCoverLetterIntro, ChunkTypeCoverLetterBody,
		ChunkTypeCoverLetterClosing, ChunkTypeCoverLetterAchievement:
		return true
	}
	return false
}

// IsValid reports whether t is a member of the closed chunk type set.
func (t ChunkType) IsValid() bool {
	return t.IsResumeType() || t.IsCoverLetterType()
}

// ParseChunkType converts a raw string into a ChunkType.
func ParseChunkType(s string) (ChunkType, bool) {
	t := ChunkType(s)
	if !t.IsValid() {
		return "", false
	}
	return t, true
}

// Provenance records which mechanism produced a chunk
type Provenance string

const (
	ProvenanceRuleBased  Provenance = "rule_based"
	ProvenanceModelBased Provenance = "model_based"
	ProvenanceManual     Provenance = "manual"
)

// Line is a single trimmed, non-empty document line with its dense index
type Line struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Section is a contiguous run of lines sharing one tentative chunk type.
// Title holds the header line that opened the section, if any; its index is StartLine.
type Section struct {
	Type      ChunkType `json:"type"`
	Title     string    `json:"title,omitempty"`
	StartLine int       `json:"start_line"`
	EndLine   int       `json:"end_line"`
	Lines     []Line    `json:"lines"`
}

// LineIndices returns every line index the section accounts for, title line included.
func (s Section) LineIndices() []int {
	indices := make([]int, 0, len(s.Lines)+1)
	if s.Title != "" {
		indices = append(indices, s.StartLine)
	}
	for _, l := range s.Lines {
		indices = append(indices, l.Index)
	}
	return indices
}

// Chunk is a single typed, ordered unit of resume or cover letter content
type Chunk struct {
	Type       ChunkType  `json:"type"`
	Text       string     `json:"text"`
	Tags       []string   `json:"tags"`
	Order      int        `json:"order"`
	Provenance Provenance `json:"provenance,omitempty"`
}

// SegmentResult is the outcome of segmenting one document
type SegmentResult struct {
	Chunks  []Chunk `json:"chunks"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}
