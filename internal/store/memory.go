package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/types"
)

// Memory is an in-process ChunkStore for tests and library callers that do not need persistence
type Memory struct {
	mu     sync.RWMutex
	chunks map[uuid.UUID]memoryEntry
	seq    int64
	now    func() time.Time
}

type memoryEntry struct {
	chunk StoredChunk
	seq   int64
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		chunks: make(map[uuid.UUID]memoryEntry),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateChunks stores chunks for a document. The batch is rejected as a whole if any chunk is invalid.
func (m *Memory) CreateChunks(_ context.Context, documentID uuid.UUID, chunks []types.Chunk) ([]StoredChunk, error) {
	if err := validateBatch(chunks); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insertLocked(documentID, chunks), nil
}

// ReplaceDocumentChunks swaps a document's chunks for a new batch under one lock
func (m *Memory) ReplaceDocumentChunks(_ context.Context, documentID uuid.UUID, chunks []types.Chunk, overwriteReviewed bool) ([]StoredChunk, error) {
	if err := validateBatch(chunks); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var existing []uuid.UUID
	reviewed := 0
	for id, entry := range m.chunks {
		if entry.chunk.DocumentID != documentID {
			continue
		}
		existing = append(existing, id)
		if entry.chunk.IsReviewed() {
			reviewed++
		}
	}
	if reviewed > 0 && !overwriteReviewed {
		return nil, fmt.Errorf("%w: %d chunk(s) of document %s", ErrReviewedChunks, reviewed, documentID)
	}

	for _, id := range existing {
		delete(m.chunks, id)
	}
	return m.insertLocked(documentID, chunks), nil
}

func (m *Memory) insertLocked(documentID uuid.UUID, chunks []types.Chunk) []StoredChunk {
	now := m.now()
	created := make([]StoredChunk, 0, len(chunks))
	for _, c := range chunks {
		c = prepareChunk(c)
		stored := StoredChunk{
			ID:         uuid.New(),
			DocumentID: documentID,
			Chunk:      c,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		m.seq++
		m.chunks[stored.ID] = memoryEntry{chunk: stored, seq: m.seq}
		created = append(created, stored)
	}
	return created
}

// GetChunk returns a chunk by ID, or nil if it does not exist
func (m *Memory) GetChunk(_ context.Context, id uuid.UUID) (*StoredChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.chunks[id]
	if !ok {
		return nil, nil
	}
	c := entry.chunk
	return &c, nil
}

// ListByDocument returns a document's chunks ordered by chunk order
func (m *Memory) ListByDocument(_ context.Context, documentID uuid.UUID) ([]StoredChunk, error) {
	entries := m.collect(func(c StoredChunk) bool { return c.DocumentID == documentID })
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].chunk.Order < entries[j].chunk.Order
	})
	return unwrap(entries), nil
}

// ListAll returns every chunk matching filter in creation order
func (m *Memory) ListAll(_ context.Context, filter ListFilter) ([]StoredChunk, error) {
	return unwrap(m.collect(filter.matches)), nil
}

// UpdateChunk applies a reviewer edit
func (m *Memory) UpdateChunk(_ context.Context, id uuid.UUID, update ChunkUpdate) (*StoredChunk, error) {
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.chunks[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyUpdate(&entry.chunk.Chunk, update)
	entry.chunk.UpdatedAt = m.now()
	m.chunks[id] = entry

	c := entry.chunk
	return &c, nil
}

// SetApproved marks a chunk as approved or pending review
func (m *Memory) SetApproved(_ context.Context, id uuid.UUID, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.chunks[id]
	if !ok {
		return ErrNotFound
	}
	entry.chunk.Approved = approved
	entry.chunk.UpdatedAt = m.now()
	m.chunks[id] = entry
	return nil
}

// DeleteChunk removes a chunk
func (m *Memory) DeleteChunk(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.chunks[id]; !ok {
		return ErrNotFound
	}
	delete(m.chunks, id)
	return nil
}

// DeleteByDocument removes every chunk of a document and reports how many were removed
func (m *Memory) DeleteByDocument(_ context.Context, documentID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, entry := range m.chunks {
		if entry.chunk.DocumentID == documentID {
			delete(m.chunks, id)
			n++
		}
	}
	return n, nil
}

// Close is a no-op for the in-memory store
func (m *Memory) Close() {}

func (m *Memory) collect(keep func(StoredChunk) bool) []memoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]memoryEntry, 0, len(m.chunks))
	for _, entry := range m.chunks {
		if keep(entry.chunk) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	return entries
}

func unwrap(entries []memoryEntry) []StoredChunk {
	out := make([]StoredChunk, len(entries))
	for i, e := range entries {
		out[i] = e.chunk
	}
	return out
}
