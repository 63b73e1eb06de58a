package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/matching"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob() *types.JobDescription {
	return &types.JobDescription{
		Title:    "Backend Engineer",
		Keywords: []string{"Go", "Kubernetes"},
		ExtractedInfo: &types.ExtractedInfo{
			RequiredSkills:  []string{"Go"},
			PreferredSkills: []string{"PostgreSQL"},
		},
	}
}

func testPool() []types.Chunk {
	return []types.Chunk{
		{Type: types.ChunkTypeSkills, Text: "Go, Kubernetes", Tags: []string{"go"}, Order: 1},
		{Type: types.ChunkTypeCoverLetterAchievement, Text: "I moved our Go services to Kubernetes", Tags: []string{}, Order: 2},
		{Type: types.ChunkTypeExperienceBullet, Text: "Tuned PostgreSQL for Go services", Tags: []string{}, Order: 3},
	}
}

func TestSelectMatches_Views(t *testing.T) {
	opts := matching.Options{MinScore: 0, MaxResults: 10}

	all, err := selectMatches(viewAll, testJob(), testPool(), opts)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	resume, err := selectMatches(viewResume, testJob(), testPool(), opts)
	require.NoError(t, err)
	require.Len(t, resume, 2)
	for _, m := range resume {
		assert.True(t, m.Chunk.Type.IsResumeType())
	}

	cover, err := selectMatches(viewCoverLetter, testJob(), testPool(), opts)
	require.NoError(t, err)
	require.Len(t, cover, 1)
	assert.Equal(t, types.ChunkTypeCoverLetterAchievement, cover[0].Chunk.Type)

	cover, err = selectMatches(viewCoverLetter, testJob(), testPool(), matching.Options{MaxResults: 10, Backfill: 1})
	require.NoError(t, err)
	assert.Len(t, cover, 2)

	_, err = selectMatches("summary", testJob(), testPool(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view")
}

func TestLoadChunkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.json")
	docs := []segmentedDocument{
		{Document: "resume.txt", Result: types.SegmentResult{Chunks: testPool()[:1], Success: true}},
		{Document: "blank.txt", Result: types.SegmentResult{Chunks: []types.Chunk{}, Error: "document is empty"}},
		{Document: "letter.txt", Result: types.SegmentResult{Chunks: testPool()[1:2], Success: true}},
	}
	require.NoError(t, writeJSON(path, docs))

	pool, err := loadChunkFile(path)
	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, types.ChunkTypeSkills, pool[0].Type)
	assert.Equal(t, types.ChunkTypeCoverLetterAchievement, pool[1].Type)
}

func TestLoadChunkFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadChunkFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read chunks file")

	bad := writeFile(t, dir, "bad.json", `{"chunks": []}`)
	_, err = loadChunkFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse chunks file")
}

func TestStoredPool(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	stored, err := s.CreateChunks(ctx, uuid.New(), testPool())
	require.NoError(t, err)
	require.NoError(t, s.SetApproved(ctx, stored[0].ID, true))

	pool, err := storedPool(ctx, s, false)
	require.NoError(t, err)
	assert.Len(t, pool, 3)

	approved, err := storedPool(ctx, s, true)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Go, Kubernetes", approved[0].Text)
}
