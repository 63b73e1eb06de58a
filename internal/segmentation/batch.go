package segmentation

import (
	"context"
	"fmt"

	"github.com/jonathan/application-tracker/internal/types"
	"golang.org/x/sync/errgroup"
)

// Document is one named input for batch segmentation
type Document struct {
	ID   string
	Text string
}

// DocumentResult pairs a document ID with its segmentation outcome
type DocumentResult struct {
	ID     string              `json:"id"`
	Result types.SegmentResult `json:"result"`
}

// SegmentAll segments independent documents concurrently with at most limit in flight
// (no limit when limit <= 0). Results keep the input order. Only context cancellation
// aborts the batch; per-document failures are carried in each result.
func SegmentAll(ctx context.Context, segmenter Segmenter, docs []Document, limit int) ([]DocumentResult, error) {
	results := make([]DocumentResult, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("segmenting %s: %w", doc.ID, err)
			}
			results[i] = DocumentResult{
				ID:     doc.ID,
				Result: segmenter.Segment(gCtx, doc.Text),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
