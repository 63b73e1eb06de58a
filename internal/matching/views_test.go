package matching

import (
	"testing"

	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedPool() []types.Chunk {
	return []types.Chunk{
		chunk(types.ChunkTypeCoverLetterIntro, "I am excited to bring my Go experience to your team", 1),
		chunk(types.ChunkTypeCoverLetterAchievement, "I led a Kubernetes migration of our Go microservices", 2),
		chunk(types.ChunkTypeSkills, "Go", 3, "go"),
		chunk(types.ChunkTypeSkills, "Kafka", 4, "kafka"),
		chunk(types.ChunkTypeExperienceBullet, "Built microservices on Kubernetes with Go and Kafka", 5),
		chunk(types.ChunkTypeExperienceBullet, "Tuned PostgreSQL queries for Go services", 6),
		chunk(types.ChunkTypeSummary, "Go engineer focused on microservices", 7),
		chunk(types.ChunkTypeCoverLetterClosing, "Thank you for your time", 8),
	}
}

func TestFindResumeChunks_OnlyResumeTypes(t *testing.T) {
	matches := FindResumeChunks(backendJob(), mixedPool(), Options{MinScore: 0, MaxResults: 100})

	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.True(t, m.Chunk.Type.IsResumeType(), "unexpected type %s", m.Chunk.Type)
	}
	assert.Len(t, matches, 5)
}

func TestFindResumeChunks_FilterBeforeTruncate(t *testing.T) {
	// The achievement chunk outranks most resume chunks but must not consume a slot.
	matches := FindResumeChunks(backendJob(), mixedPool(), Options{MinScore: 0, MaxResults: 2})

	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.True(t, m.Chunk.Type.IsResumeType())
	}
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
}

func TestFindCoverLetterChunks_Backfill(t *testing.T) {
	opts := Options{MinScore: 0, MaxResults: 100, Backfill: 3}
	matches := FindCoverLetterChunks(backendJob(), mixedPool(), opts)

	coverCount, resumeCount := 0, 0
	for _, m := range matches {
		switch {
		case m.Chunk.Type.IsCoverLetterType():
			coverCount++
		case m.Chunk.Type.IsResumeType():
			resumeCount++
		}
	}
	assert.Equal(t, 3, coverCount)
	assert.Equal(t, 3, resumeCount)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}

	topResume := FindResumeChunks(backendJob(), mixedPool(), Options{MinScore: 0, MaxResults: 3})
	for _, r := range topResume {
		assert.Contains(t, matches, r)
	}
}

func TestFindCoverLetterChunks_NoBackfill(t *testing.T) {
	matches := FindCoverLetterChunks(backendJob(), mixedPool(), Options{MinScore: 0, MaxResults: 10})

	require.Len(t, matches, 3)
	assert.Equal(t, types.ChunkTypeCoverLetterClosing, matches[2].Chunk.Type, "the closing has no hits")
	for _, m := range matches {
		assert.True(t, m.Chunk.Type.IsCoverLetterType())
	}
}

func TestFindCoverLetterChunks_Truncates(t *testing.T) {
	matches := FindCoverLetterChunks(backendJob(), mixedPool(), Options{MinScore: 0, MaxResults: 2, Backfill: 3})
	assert.Len(t, matches, 2)
}

func TestViews_EmptyJob(t *testing.T) {
	assert.Empty(t, FindResumeChunks(&types.JobDescription{}, mixedPool(), DefaultOptions()))
	assert.Empty(t, FindCoverLetterChunks(&types.JobDescription{}, mixedPool(), DefaultOptions()))
}
