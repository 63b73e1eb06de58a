package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/application-tracker/internal/types"
	"go.uber.org/zap"
)

// schemaStatements creates the chunk table; each statement is idempotent
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS document_chunks (
		id          UUID PRIMARY KEY,
		document_id UUID NOT NULL,
		chunk_type  TEXT NOT NULL,
		text        TEXT NOT NULL,
		tags        TEXT[] NOT NULL DEFAULT '{}',
		chunk_order INTEGER NOT NULL CHECK (chunk_order > 0),
		provenance  TEXT NOT NULL DEFAULT 'rule_based',
		approved    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_document_chunks_document ON document_chunks (document_id, chunk_order)`,
	`CREATE INDEX IF NOT EXISTS idx_document_chunks_approved ON document_chunks (approved) WHERE approved`,
}

const chunkColumns = `id, document_id, chunk_type, text, tags, chunk_order, provenance, approved, created_at, updated_at`

// Postgres is a ChunkStore backed by a PostgreSQL connection pool
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string, logger *zap.Logger) (*Postgres, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool, logger: logger}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Migrate creates the chunk table and indexes if they do not exist
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	p.logger.Debug("chunk schema applied")
	return nil
}

// CreateChunks stores a document's chunks in a single transaction
func (p *Postgres) CreateChunks(ctx context.Context, documentID uuid.UUID, chunks []types.Chunk) ([]StoredChunk, error) {
	if err := validateBatch(chunks); err != nil {
		return nil, err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created, err := insertChunks(ctx, tx, documentID, chunks)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit chunks: %w", err)
	}

	p.logger.Debug("stored chunks", zap.String("document_id", documentID.String()), zap.Int("count", len(created)))
	return created, nil
}

// ReplaceDocumentChunks deletes a document's chunks and inserts the new batch in one transaction
func (p *Postgres) ReplaceDocumentChunks(ctx context.Context, documentID uuid.UUID, chunks []types.Chunk, overwriteReviewed bool) ([]StoredChunk, error) {
	if err := validateBatch(chunks); err != nil {
		return nil, err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// FOR UPDATE holds reviewer edits on these rows until commit.
	rows, err := tx.Query(ctx,
		`SELECT approved, provenance FROM document_chunks WHERE document_id = $1 FOR UPDATE`, documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock document chunks: %w", err)
	}
	reviewed := 0
	for rows.Next() {
		var approved bool
		var provenance string
		if err := rows.Scan(&approved, &provenance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan document chunk: %w", err)
		}
		if approved || types.Provenance(provenance) == types.ProvenanceManual {
			reviewed++
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document chunks: %w", err)
	}
	if reviewed > 0 && !overwriteReviewed {
		return nil, fmt.Errorf("%w: %d chunk(s) of document %s", ErrReviewedChunks, reviewed, documentID)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM document_chunks WHERE document_id = $1`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document chunks: %w", err)
	}

	created, err := insertChunks(ctx, tx, documentID, chunks)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit chunks: %w", err)
	}

	p.logger.Debug("replaced chunks",
		zap.String("document_id", documentID.String()),
		zap.Int64("deleted", tag.RowsAffected()),
		zap.Int("count", len(created)),
	)
	return created, nil
}

func insertChunks(ctx context.Context, tx pgx.Tx, documentID uuid.UUID, chunks []types.Chunk) ([]StoredChunk, error) {
	created := make([]StoredChunk, 0, len(chunks))
	for _, c := range chunks {
		c = prepareChunk(c)
		stored, err := scanChunk(tx.QueryRow(ctx,
			`INSERT INTO document_chunks (id, document_id, chunk_type, text, tags, chunk_order, provenance)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+chunkColumns,
			uuid.New(), documentID, string(c.Type), c.Text, c.Tags, c.Order, string(c.Provenance),
		))
		if err != nil {
			return nil, fmt.Errorf("failed to insert chunk %d: %w", c.Order, err)
		}
		created = append(created, *stored)
	}
	return created, nil
}

// GetChunk returns a chunk by ID, or nil if it does not exist
func (p *Postgres) GetChunk(ctx context.Context, id uuid.UUID) (*StoredChunk, error) {
	stored, err := scanChunk(p.pool.QueryRow(ctx,
		`SELECT `+chunkColumns+` FROM document_chunks WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chunk: %w", err)
	}
	return stored, nil
}

// ListByDocument returns a document's chunks ordered by chunk order
func (p *Postgres) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]StoredChunk, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+chunkColumns+` FROM document_chunks WHERE document_id = $1 ORDER BY chunk_order`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list document chunks: %w", err)
	}
	return collectChunks(rows)
}

// ListAll returns every chunk matching filter in creation order
func (p *Postgres) ListAll(ctx context.Context, filter ListFilter) ([]StoredChunk, error) {
	var typeFilter []string
	if len(filter.Types) > 0 {
		typeFilter = typeStrings(filter.Types)
	}

	rows, err := p.pool.Query(ctx,
		`SELECT `+chunkColumns+` FROM document_chunks
		 WHERE ($1 = FALSE OR approved)
		   AND ($2::text[] IS NULL OR chunk_type = ANY($2))
		 ORDER BY created_at, document_id, chunk_order`,
		filter.ApprovedOnly, typeFilter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	return collectChunks(rows)
}

// UpdateChunk applies a reviewer edit
func (p *Postgres) UpdateChunk(ctx context.Context, id uuid.UUID, update ChunkUpdate) (*StoredChunk, error) {
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	current, err := p.GetChunk(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	applyUpdate(&current.Chunk, update)

	stored, err := scanChunk(p.pool.QueryRow(ctx,
		`UPDATE document_chunks
		 SET chunk_type = $2, text = $3, tags = $4, provenance = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+chunkColumns,
		id, string(current.Type), current.Text, current.Tags, string(current.Provenance),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update chunk: %w", err)
	}
	return stored, nil
}

// SetApproved marks a chunk as approved or pending review
func (p *Postgres) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE document_chunks SET approved = $2, updated_at = NOW() WHERE id = $1`,
		id, approved,
	)
	if err != nil {
		return fmt.Errorf("failed to set approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChunk removes a chunk
func (p *Postgres) DeleteChunk(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM document_chunks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chunk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByDocument removes every chunk of a document and reports how many were removed
func (p *Postgres) DeleteByDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM document_chunks WHERE document_id = $1`, documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document chunks: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanChunk(row pgx.Row) (*StoredChunk, error) {
	var s StoredChunk
	var chunkType, provenance string
	err := row.Scan(&s.ID, &s.DocumentID, &chunkType, &s.Text, &s.Tags, &s.Order,
		&provenance, &s.Approved, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Type = types.ChunkType(chunkType)
	s.Provenance = types.Provenance(provenance)
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return &s, nil
}

func collectChunks(rows pgx.Rows) ([]StoredChunk, error) {
	defer rows.Close()

	chunks := make([]StoredChunk, 0)
	for rows.Next() {
		s, err := scanChunk(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chunks: %w", err)
	}
	return chunks, nil
}
