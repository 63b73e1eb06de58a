// Package matching scores stored chunks against a job description and selects the most
// relevant ones for resume and cover-letter generation.
package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/application-tracker/internal/types"
)

// Per-hit weights and caps for each scoring component
const (
	keywordWeight   = 0.3
	keywordCap      = 3.0
	requiredWeight  = 0.5
	requiredCap     = 5.0
	preferredWeight = 0.2
	preferredCap    = 2.0

	// normalizer is fixed and independent of pool size
	normalizer = 10.0
)

// Defaults applied by DefaultOptions
const (
	DefaultMinScore   = 0.1
	DefaultMaxResults = 20
	DefaultBackfill   = 3
)

// Options controls filtering and truncation of match lists
type Options struct {
	// MinScore drops matches scoring below it. Clamped to [0, 1].
	MinScore float64
	// MaxResults caps the returned list. Values <= 0 use DefaultMaxResults.
	MaxResults int
	// Backfill is how many top resume chunks the cover-letter view mixes in.
	Backfill int
}

// DefaultOptions returns the standard scorer settings.
func DefaultOptions() Options {
	return Options{
		MinScore:   DefaultMinScore,
		MaxResults: DefaultMaxResults,
		Backfill:   DefaultBackfill,
	}
}

func (o Options) normalized() Options {
	if o.MinScore < 0 {
		o.MinScore = 0
	}
	if o.MinScore > 1 {
		o.MinScore = 1
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.Backfill < 0 {
		o.Backfill = 0
	}
	return o
}

// jobTerms is the lowercased, deduplicated view of a job description used for scoring
type jobTerms struct {
	keywords  []string
	skills    []string
	required  map[string]bool
	preferred map[string]bool
}

func newJobTerms(job *types.JobDescription) jobTerms {
	var keywords []string
	if job != nil {
		keywords = job.Keywords
	}
	required := normalizeTerms(job.RequiredSkills())
	preferred := normalizeTerms(job.PreferredSkills())

	return jobTerms{
		keywords:  normalizeTerms(keywords),
		skills:    normalizeTerms(append(append([]string(nil), required...), preferred...)),
		required:  toSet(required),
		preferred: toSet(preferred),
	}
}

func (j jobTerms) empty() bool {
	return len(j.keywords) == 0 && len(j.skills) == 0
}

// ScoreChunk computes the relevance of a single chunk against a job description. The
// returned score is always within [0, 1].
func ScoreChunk(job *types.JobDescription, chunk types.Chunk) types.ChunkMatch {
	return scoreChunk(newJobTerms(job), chunk)
}

func scoreChunk(terms jobTerms, chunk types.Chunk) types.ChunkMatch {
	text := strings.ToLower(chunk.Text)
	tags := make(map[string]bool, len(chunk.Tags))
	for _, tag := range chunk.Tags {
		tags[strings.ToLower(tag)] = true
	}

	matchedKeywords := matchTerms(terms.keywords, text, tags)
	skillMatches := matchTerms(terms.skills, text, tags)

	requiredHits, preferredHits := 0, 0
	for _, skill := range skillMatches {
		if terms.required[skill] {
			requiredHits++
		}
		if terms.preferred[skill] {
			preferredHits++
		}
	}

	raw := min(keywordWeight*float64(len(matchedKeywords)), keywordCap) +
		min(requiredWeight*float64(requiredHits), requiredCap) +
		min(preferredWeight*float64(preferredHits), preferredCap) +
		typeBoost(chunk.Type)

	return types.ChunkMatch{
		Chunk:           chunk,
		Score:           min(raw/normalizer, 1.0),
		MatchedKeywords: matchedKeywords,
		SkillMatches:    skillMatches,
	}
}

// FindRelevantChunks scores every chunk in pool, keeps those scoring at least opts.MinScore,
// and returns them best first, truncated to opts.MaxResults. Ties keep pool order. An empty pool or a job with no keywords and no
// skills yields an empty list.
func FindRelevantChunks(job *types.JobDescription, pool []types.Chunk, opts Options) []types.ChunkMatch {
	opts = opts.normalized()
	return truncate(rankAll(job, pool, opts.MinScore), opts.MaxResults)
}

// rankAll returns every qualifying match sorted by score, untruncated.
func rankAll(job *types.JobDescription, pool []types.Chunk, minScore float64) []types.ChunkMatch {
	matches := make([]types.ChunkMatch, 0)

	terms := newJobTerms(job)
	if terms.empty() {
		return matches
	}

	for _, chunk := range pool {
		match := scoreChunk(terms, chunk)
		if match.Score < minScore {
			continue
		}
		matches = append(matches, match)
	}

	sortByScore(matches)
	return matches
}

func sortByScore(matches []types.ChunkMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

func truncate(matches []types.ChunkMatch, maxResults int) []types.ChunkMatch {
	if len(matches) > maxResults {
		return matches[:maxResults]
	}
	return matches
}

// typeBoost is the fixed per-type bonus added to the raw score.
func typeBoost(t types.ChunkType) float64 {
	switch t {
	case types.ChunkTypeSkills:
		return 0.4
	case types.ChunkTypeExperienceSection,
		types.ChunkTypeSummary,
		types.ChunkTypeProjects,
		types.ChunkTypeCoverLetterAchievement:
		return 0.3
	case types.ChunkTypeExperienceBullet,
		types.ChunkTypeCertifications,
		types.ChunkTypeCoverLetterBody:
		return 0.2
	case types.ChunkTypeEducation, types.ChunkTypeCoverLetterIntro:
		return 0.1
	case types.ChunkTypeCoverLetterClosing:
		return 0.05
	case types.ChunkTypeHeader, types.ChunkTypeOther:
		return 0
	default:
		return 0
	}
}

// matchTerms returns the terms found as a substring of text or equal to a tag, in term order.
func matchTerms(terms []string, text string, tags map[string]bool) []string {
	matched := make([]string, 0)
	for _, term := range terms {
		if tags[term] || strings.Contains(text, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// normalizeTerms lowercases and trims terms, dropping empties and duplicates.
func normalizeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}

func toSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		set[term] = true
	}
	return set
}
