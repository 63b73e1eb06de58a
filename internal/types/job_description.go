// Package types provides type definitions for structured data used throughout the application tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobDescription is the view of a job posting consumed by the relevance scorer.
// Keywords and skills are produced by an upstream extraction step.
type JobDescription struct {
	Title         string         `json:"title,omitempty"`
	Company       string         `json:"company,omitempty"`
	Keywords      []string       `json:"keywords"`
	ExtractedInfo *ExtractedInfo `json:"extracted_info,omitempty"`
}

// ExtractedInfo holds the skill lists pulled out of a posting
type ExtractedInfo struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
}

// RequiredSkills returns the posting's required skills, or nil when absent.
func (j *JobDescription) RequiredSkills() []string {
	if j == nil || j.ExtractedInfo == nil {
		return nil
	}
	return j.ExtractedInfo.RequiredSkills
}

// PreferredSkills returns the posting's preferred skills, or nil when absent.
func (j *JobDescription) PreferredSkills() []string {
	if j == nil || j.ExtractedInfo == nil {
		return nil
	}
	return j.ExtractedInfo.PreferredSkills
}

// ChunkMatch is a transient scoring result for one chunk
type ChunkMatch struct {
	Chunk           Chunk    `json:"chunk"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	SkillMatches    []string `json:"skill_matches"`
}

// ChunkMatches wraps a ranked match list for serialization
type ChunkMatches struct {
	Matches []ChunkMatch `json:"matches"`
}
