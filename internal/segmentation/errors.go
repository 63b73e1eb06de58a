// Package segmentation splits raw resume and cover letter text into typed, ordered chunks
// using structural and lexical heuristics only.
package segmentation

import (
	"errors"

	"github.com/jonathan/application-tracker/internal/types"
)

// ErrEmptyInput is reported when a document has no usable lines after trimming.
// It is the only failure the rule-based segmenter produces.
var ErrEmptyInput = errors.New("document is empty: no text lines found to segment")

// failedResult builds an unsuccessful result carrying err's message.
func failedResult(err error) types.SegmentResult {
	return types.SegmentResult{
		Chunks:  []types.Chunk{},
		Success: false,
		Error:   err.Error(),
	}
}
