package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/application-tracker/internal/extract"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
San Francisco, CA
Backend engineer focused on Go microservices and developer tooling.

SKILLS
Go, Kubernetes, PostgreSQL

EXPERIENCE
Senior Engineer at Acme Corp 2019-2022
- Built Go microservices on Kubernetes
- Reduced PostgreSQL latency by 40%
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSegmentPaths(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", testResume)
	blank := writeFile(t, dir, "blank.md", "  \n\n")

	outputs, err := segmentPaths(context.Background(), zap.NewNop(), saveOptions{}, []string{resume, blank}, 2)
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	assert.Equal(t, resume, outputs[0].Document)
	assert.True(t, outputs[0].Result.Success)
	assert.NotEmpty(t, outputs[0].Result.Chunks)
	assert.Equal(t, extract.FormatText, outputs[0].Metadata.Format)
	assert.Zero(t, outputs[0].Saved)

	var sawSkills bool
	for _, c := range outputs[0].Result.Chunks {
		if c.Type == types.ChunkTypeSkills {
			sawSkills = true
		}
	}
	assert.True(t, sawSkills)

	assert.Equal(t, blank, outputs[1].Document)
	assert.False(t, outputs[1].Result.Success)
	assert.NotEmpty(t, outputs[1].Result.Error)
}

func TestSegmentPaths_SaveReplacesDocumentChunks(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", testResume)
	s := store.NewMemory()
	ctx := context.Background()

	first, err := segmentPaths(ctx, zap.NewNop(), saveOptions{store: s}, []string{resume}, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, len(first[0].Result.Chunks), first[0].Saved)

	second, err := segmentPaths(ctx, zap.NewNop(), saveOptions{store: s}, []string{resume}, 1)
	require.NoError(t, err)
	assert.Equal(t, first[0].DocumentID, second[0].DocumentID, "same content keeps its document ID")

	stored, err := s.ListByDocument(ctx, second[0].DocumentID)
	require.NoError(t, err)
	assert.Len(t, stored, len(second[0].Result.Chunks))

	all, err := s.ListAll(ctx, store.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, len(second[0].Result.Chunks))
}

func TestSegmentPaths_ReviewedChunksKeptUnlessOverwritten(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", testResume)
	s := store.NewMemory()
	ctx := context.Background()

	first, err := segmentPaths(ctx, zap.NewNop(), saveOptions{store: s}, []string{resume}, 1)
	require.NoError(t, err)
	stored, err := s.ListByDocument(ctx, first[0].DocumentID)
	require.NoError(t, err)
	require.NotEmpty(t, stored)
	require.NoError(t, s.SetApproved(ctx, stored[0].ID, true))

	kept, err := segmentPaths(ctx, zap.NewNop(), saveOptions{store: s}, []string{resume}, 1)
	require.NoError(t, err)
	assert.Zero(t, kept[0].Saved)
	assert.Contains(t, kept[0].Skipped, "reviewed chunks")

	approved, err := s.GetChunk(ctx, stored[0].ID)
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.True(t, approved.Approved)

	replaced, err := segmentPaths(ctx, zap.NewNop(), saveOptions{store: s, overwriteReviewed: true}, []string{resume}, 1)
	require.NoError(t, err)
	assert.Empty(t, replaced[0].Skipped)
	assert.Equal(t, len(replaced[0].Result.Chunks), replaced[0].Saved)

	gone, err := s.GetChunk(ctx, stored[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSegmentPaths_FailedDocumentNotSaved(t *testing.T) {
	dir := t.TempDir()
	blank := writeFile(t, dir, "blank.txt", "\n")
	s := store.NewMemory()

	outputs, err := segmentPaths(context.Background(), zap.NewNop(), saveOptions{store: s}, []string{blank}, 1)
	require.NoError(t, err)
	assert.Zero(t, outputs[0].Saved)

	all, err := s.ListAll(context.Background(), store.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSegmentPaths_ExtractionErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := segmentPaths(context.Background(), zap.NewNop(), saveOptions{}, []string{writeFile(t, dir, "notes.xyz", "x")}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)

	_, err = segmentPaths(context.Background(), zap.NewNop(), saveOptions{}, []string{filepath.Join(dir, "missing.txt")}, 1)
	assert.Error(t, err)
}
