package segmentation

import (
	"context"

	"github.com/jonathan/application-tracker/internal/types"
)

// Segmenter is any strategy that turns document text into chunks. Implementations must
// report failures through the result value rather than panicking.
type Segmenter interface {
	Segment(ctx context.Context, text string) types.SegmentResult
}

// SegmenterFunc adapts a plain function to the Segmenter interface.
type SegmenterFunc func(ctx context.Context, text string) types.SegmentResult

// Segment calls f(ctx, text).
func (f SegmenterFunc) Segment(ctx context.Context, text string) types.SegmentResult {
	return f(ctx, text)
}

// RuleBased is the deterministic heuristic segmenter.
type RuleBased struct{}

// Segment implements Segmenter.
func (RuleBased) Segment(_ context.Context, text string) types.SegmentResult {
	return SegmentDocument(text)
}

// SegmentDocument splits text into lines, detects sections and converts them into chunks.
// Empty or whitespace-only input is the only unsuccessful outcome.
func SegmentDocument(text string) types.SegmentResult {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return failedResult(ErrEmptyInput)
	}

	sections := DetectSections(lines)
	return types.SegmentResult{
		Chunks:  ConvertSections(sections),
		Success: true,
	}
}

type fallbackSegmenter struct {
	primary  Segmenter
	fallback Segmenter
}

// WithFallback returns a Segmenter that tries primary first and runs fallback when the
// primary fails or produces no chunks.
func WithFallback(primary, fallback Segmenter) Segmenter {
	return &fallbackSegmenter{primary: primary, fallback: fallback}
}

func (s *fallbackSegmenter) Segment(ctx context.Context, text string) types.SegmentResult {
	result := s.primary.Segment(ctx, text)
	if result.Success && len(result.Chunks) > 0 {
		return result
	}
	return s.fallback.Segment(ctx, text)
}
