package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/extract"
	"github.com/jonathan/application-tracker/internal/logger"
	"github.com/jonathan/application-tracker/internal/schemas"
	"github.com/jonathan/application-tracker/internal/segmentation"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <file>...",
	Short: "Segment resumes and cover letters into typed chunks",
	Long: `Extracts the text of each document (plain text, Markdown, HTML, PDF, DOCX, ODT or RTF),
segments it into typed, tagged chunks and writes the results as JSON.
With --save the chunks of successfully segmented documents replace any previously stored
chunks of the same document. Documents with approved or edited chunks are skipped unless
--overwrite-reviewed is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSegment,
}

var (
	segmentOutput    string
	segmentSave      bool
	segmentOverwrite bool
)

func init() {
	segmentCmd.Flags().StringVarP(&segmentOutput, "out", "o", "", "Output file path (default stdout)")
	segmentCmd.Flags().BoolVar(&segmentSave, "save", false, "Persist chunks to the database")
	segmentCmd.Flags().BoolVar(&segmentOverwrite, "overwrite-reviewed", false, "Replace stored chunks even if some were approved or edited")
	segmentCmd.Flags().Int("concurrency", 4, "Maximum documents segmented at once")

	rootCmd.AddCommand(segmentCmd)
}

// documentNamespace scopes document IDs derived from content hashes
var documentNamespace = uuid.MustParse("6f1e4a52-3b0c-4d8e-9a47-2c5b8d1f0e63")

// segmentedDocument is the per-document entry of the segment command output
type segmentedDocument struct {
	Document   string              `json:"document"`
	DocumentID uuid.UUID           `json:"document_id"`
	Metadata   *extract.Metadata   `json:"metadata"`
	Result     types.SegmentResult `json:"result"`
	Saved      int                 `json:"saved,omitempty"`
	Skipped    string              `json:"skipped,omitempty"`
}

// saveOptions controls how segmentPaths persists results; a nil store disables saving
type saveOptions struct {
	store             store.ChunkStore
	overwriteReviewed bool
}

func runSegment(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	save := saveOptions{overwriteReviewed: segmentOverwrite}
	if segmentSave {
		pg, err := state.openStore(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()
		save.store = pg
	}

	results, err := segmentPaths(ctx, state.logger, save, args, state.cfg.Segment.Concurrency)
	if err != nil {
		return err
	}

	if verbose {
		for _, r := range results {
			state.printer.PrintSegmentResult(r.Document, r.Result)
		}
	}

	if err := writeJSON(segmentOutput, results); err != nil {
		return err
	}
	if segmentOutput != "" {
		fmt.Fprintf(os.Stderr, "Segmented %d document(s) to %s\n", len(results), segmentOutput)
	}
	return nil
}

// segmentPaths extracts and segments every path, persisting successful results when a store
// is given. A document that cannot be segmented is reported in its result, as is a document
// whose reviewed chunks block the replace; a document that cannot be read fails the whole run.
func segmentPaths(ctx context.Context, log *zap.Logger, save saveOptions, paths []string, concurrency int) ([]segmentedDocument, error) {
	docs := make([]segmentation.Document, 0, len(paths))
	outputs := make([]segmentedDocument, 0, len(paths))

	for _, path := range paths {
		text, meta, err := extract.File(ctx, path, log)
		if err != nil {
			return nil, err
		}
		log.Debug("document text", zap.String(logger.FieldDocument, path), zap.String("preview", logger.TruncateForLog(text, 120)))
		docs = append(docs, segmentation.Document{ID: path, Text: text})
		outputs = append(outputs, segmentedDocument{
			Document:   path,
			DocumentID: uuid.NewSHA1(documentNamespace, []byte(meta.Hash)),
			Metadata:   meta,
		})
	}

	results, err := segmentation.SegmentAll(ctx, segmentation.RuleBased{}, docs, concurrency)
	if err != nil {
		return nil, err
	}

	for i, r := range results {
		out := &outputs[i]
		out.Result = r.Result

		if err := schemas.ValidateValue(schemas.SegmentResult, r.Result); err != nil {
			log.Warn("segment result failed schema validation", zap.String(logger.FieldDocument, r.ID), zap.Error(err))
		}

		if !r.Result.Success {
			log.Warn("document could not be segmented",
				zap.String(logger.FieldDocument, r.ID),
				zap.String("reason", r.Result.Error),
			)
			continue
		}

		log.Info("segmented document",
			zap.String(logger.FieldDocument, r.ID),
			zap.Int(logger.FieldChunks, len(r.Result.Chunks)),
		)

		if save.store == nil || len(r.Result.Chunks) == 0 {
			continue
		}
		stored, err := save.store.ReplaceDocumentChunks(ctx, out.DocumentID, r.Result.Chunks, save.overwriteReviewed)
		if errors.Is(err, store.ErrReviewedChunks) {
			out.Skipped = err.Error()
			log.Warn("kept reviewed chunks, use --overwrite-reviewed to replace them",
				zap.String(logger.FieldDocument, r.ID),
				zap.Error(err),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save chunks for %s: %w", r.ID, err)
		}
		out.Saved = len(stored)
		log.Debug("saved chunks", zap.String(logger.FieldDocument, r.ID), zap.Int(logger.FieldChunks, out.Saved))
	}

	return outputs, nil
}
