package matching

import (
	"github.com/jonathan/application-tracker/internal/types"
)

// FindResumeChunks is FindRelevantChunks restricted to resume chunk types. Filtering happens
// before truncation, so cover-letter chunks never take a resume slot.
func FindResumeChunks(job *types.JobDescription, pool []types.Chunk, opts Options) []types.ChunkMatch {
	opts = opts.normalized()
	ranked := filterByType(rankAll(job, pool, opts.MinScore), types.ChunkType.IsResumeType)
	return truncate(ranked, opts.MaxResults)
}

// FindCoverLetterChunks returns cover-letter chunks plus the opts.Backfill highest scoring
// resume chunks for context, re-sorted together by score and truncated.
func FindCoverLetterChunks(job *types.JobDescription, pool []types.Chunk, opts Options) []types.ChunkMatch {
	opts = opts.normalized()
	ranked := rankAll(job, pool, opts.MinScore)

	combined := filterByType(ranked, types.ChunkType.IsCoverLetterType)
	backfill := truncate(filterByType(ranked, types.ChunkType.IsResumeType), opts.Backfill)
	combined = append(combined, backfill...)

	sortByScore(combined)
	return truncate(combined, opts.MaxResults)
}

func filterByType(matches []types.ChunkMatch, keep func(types.ChunkType) bool) []types.ChunkMatch {
	filtered := make([]types.ChunkMatch, 0, len(matches))
	for _, m := range matches {
		if keep(m.Chunk.Type) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
