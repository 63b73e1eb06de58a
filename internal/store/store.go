// Package store persists segmented chunks for review and later relevance matching.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/types"
)

// ErrNotFound is returned by mutations that target a missing chunk
var ErrNotFound = errors.New("chunk not found")

// ErrReviewedChunks is returned when a replace would discard approved or manually edited chunks
var ErrReviewedChunks = errors.New("document has reviewed chunks")

// ErrInvalidChunk is returned when a chunk or update would violate the chunk contract
var ErrInvalidChunk = errors.New("invalid chunk")

// StoredChunk is a persisted chunk with its ownership and review state
type StoredChunk struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	types.Chunk
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChunkUpdate holds the fields a reviewer may edit. Nil fields are left unchanged.
type ChunkUpdate struct {
	Type *types.ChunkType
	Text *string
	Tags []string
}

// ListFilter narrows ListAll results
type ListFilter struct {
	ApprovedOnly bool
	Types        []types.ChunkType
}

// ChunkStore is the chunk persistence contract. Get returns (nil, nil) for a missing chunk;
// mutations on a missing chunk return ErrNotFound.
type ChunkStore interface {
	CreateChunks(ctx context.Context, documentID uuid.UUID, chunks []types.Chunk) ([]StoredChunk, error)
	GetChunk(ctx context.Context, id uuid.UUID) (*StoredChunk, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]StoredChunk, error)
	ListAll(ctx context.Context, filter ListFilter) ([]StoredChunk, error)
	UpdateChunk(ctx context.Context, id uuid.UUID, update ChunkUpdate) (*StoredChunk, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	DeleteChunk(ctx context.Context, id uuid.UUID) error
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) (int64, error)
	// ReplaceDocumentChunks atomically swaps a document's chunks for a new batch. Unless
	// overwriteReviewed is set it fails with ErrReviewedChunks, changing nothing, when any
	// existing chunk is approved or was edited by a reviewer.
	ReplaceDocumentChunks(ctx context.Context, documentID uuid.UUID, chunks []types.Chunk, overwriteReviewed bool) ([]StoredChunk, error)
	Close()
}

var (
	_ ChunkStore = (*Memory)(nil)
	_ ChunkStore = (*Postgres)(nil)
)

// Pool strips storage metadata, yielding the chunk pool consumed by the relevance scorer.
func Pool(stored []StoredChunk) []types.Chunk {
	pool := make([]types.Chunk, len(stored))
	for i, s := range stored {
		pool[i] = s.Chunk
	}
	return pool
}

// IsReviewed reports whether a reviewer has approved or edited the chunk
func (c StoredChunk) IsReviewed() bool {
	return c.Approved || c.Provenance == types.ProvenanceManual
}

func validateBatch(chunks []types.Chunk) error {
	for _, c := range chunks {
		if err := validateChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func validateChunk(c types.Chunk) error {
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidChunk, c.Type)
	}
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidChunk)
	}
	if c.Order < 1 {
		return fmt.Errorf("%w: order %d must be positive", ErrInvalidChunk, c.Order)
	}
	return nil
}

// prepareChunk normalizes tags and fills in the default provenance before storage.
func prepareChunk(c types.Chunk) types.Chunk {
	c.Tags = normalizeTags(c.Tags)
	if c.Provenance == "" {
		c.Provenance = types.ProvenanceRuleBased
	}
	return c
}

func validateUpdate(u ChunkUpdate) error {
	if u.Type != nil && !u.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidChunk, *u.Type)
	}
	if u.Text != nil && strings.TrimSpace(*u.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidChunk)
	}
	return nil
}

// applyUpdate edits c in place. Any reviewer edit marks the chunk as manual.
func applyUpdate(c *types.Chunk, u ChunkUpdate) {
	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.Text != nil {
		c.Text = strings.TrimSpace(*u.Text)
	}
	if u.Tags != nil {
		c.Tags = normalizeTags(u.Tags)
	}
	c.Provenance = types.ProvenanceManual
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (f ListFilter) matches(c StoredChunk) bool {
	if f.ApprovedOnly && !c.Approved {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if c.Type == t {
			return true
		}
	}
	return false
}

func typeStrings(ts []types.ChunkType) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
