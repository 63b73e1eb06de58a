package segmentation

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/application-tracker/internal/patterns"
	"github.com/jonathan/application-tracker/internal/tagging"
	"github.com/jonathan/application-tracker/internal/types"
)

// maxSkillFragmentLen is the exclusive upper bound on a split skill fragment.
const maxSkillFragmentLen = 100

// ConvertSections folds sections into chunks. The order counter is threaded through every
// sub-converter so order values are 1-based and contiguous across the whole document.
func ConvertSections(sections []types.Section) []types.Chunk {
	chunks := make([]types.Chunk, 0, len(sections))
	order := 0
	for _, section := range sections {
		var converted []types.Chunk
		converted, order = convertSection(section, order)
		chunks = append(chunks, converted...)
	}
	return chunks
}

// convertSection dispatches on section type and returns the new chunks with the updated order.
func convertSection(section types.Section, order int) ([]types.Chunk, int) {
	texts := sectionTexts(section)
	if len(texts) == 0 {
		return nil, order
	}

	switch section.Type {
	case types.ChunkTypeHeader, types.ChunkTypeSummary:
		return convertMerged(section.Type, texts, order)
	case types.ChunkTypeSkills:
		return convertSkills(texts, order)
	case types.ChunkTypeExperienceSection:
		return convertExperience(texts, order)
	case types.ChunkTypeExperienceBullet, types.ChunkTypeEducation, types.ChunkTypeProjects,
		types.ChunkTypeCertifications, types.ChunkTypeOther,
		types.ChunkTypeCoverLetterIntro, types.ChunkTypeCoverLetterBody,
		types.ChunkTypeCoverLetterClosing, types.ChunkTypeCoverLetterAchievement:
		if containsDateRange(texts) {
			return convertExperience(texts, order)
		}
		return convertMerged(section.Type, texts, order)
	}
	return convertMerged(section.Type, texts, order)
}

// convertMerged joins every line of the section into a single chunk.
func convertMerged(chunkType types.ChunkType, texts []string, order int) ([]types.Chunk, int) {
	order++
	return []types.Chunk{newChunk(chunkType, strings.Join(texts, " "), order)}, order
}

// convertSkills splits a skills block into one chunk per fragment. A block that does not
// split into at least two usable fragments stays a single chunk.
func convertSkills(texts []string, order int) ([]types.Chunk, int) {
	fragments := splitSkills(strings.Join(texts, "\n"))
	if len(fragments) <= 1 {
		return convertMerged(types.ChunkTypeSkills, texts, order)
	}

	chunks := make([]types.Chunk, 0, len(fragments))
	for _, fragment := range fragments {
		order++
		chunks = append(chunks, newChunk(types.ChunkTypeSkills, fragment, order, tagging.SkillTag(fragment)))
	}
	return chunks, order
}

func splitSkills(text string) []string {
	parts := patterns.SkillSeparators.Split(text, -1)
	fragments := make([]string, 0, len(parts))
	for _, part := range parts {
		fragment, _ := patterns.StripBullet(strings.TrimSpace(part))
		fragment = strings.TrimSpace(fragment)
		if n := utf8.RuneCountInString(fragment); n == 0 || n >= maxSkillFragmentLen {
			continue
		}
		fragments = append(fragments, fragment)
	}
	return fragments
}

// convertExperience emits one chunk per line: job header lines become experience_section
// chunks, bullet and plain lines become experience_bullet chunks.
func convertExperience(texts []string, order int) ([]types.Chunk, int) {
	chunks := make([]types.Chunk, 0, len(texts))
	for _, text := range texts {
		stripped, isBullet := patterns.StripBullet(text)
		chunkType := types.ChunkTypeExperienceBullet
		switch {
		case isBullet:
			if stripped == "" {
				continue
			}
			text = stripped
		case IsJobHeaderLine(text):
			chunkType = types.ChunkTypeExperienceSection
		}
		order++
		chunks = append(chunks, newChunk(chunkType, text, order))
	}
	return chunks, order
}

// IsJobHeaderLine reports whether an experience line introduces a role rather than describing it.
func IsJobHeaderLine(line string) bool {
	if patterns.DateRange.MatchString(line) || patterns.TitleCasedJobTitle.MatchString(line) {
		return true
	}
	return patterns.RoleKeyword.MatchString(line) && patterns.CompanyIndicator.MatchString(line)
}

func containsDateRange(texts []string) bool {
	for _, text := range texts {
		if patterns.DateRange.MatchString(text) {
			return true
		}
	}
	return false
}

func sectionTexts(section types.Section) []string {
	texts := make([]string, 0, len(section.Lines))
	for _, line := range section.Lines {
		if text := strings.TrimSpace(line.Text); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

func newChunk(chunkType types.ChunkType, text string, order int, extraTags ...string) types.Chunk {
	return types.Chunk{
		Type:       chunkType,
		Text:       text,
		Tags:       tagging.Merge(extraTags, tagging.ExtractTags(text, chunkType)),
		Order:      order,
		Provenance: types.ProvenanceRuleBased,
	}
}
