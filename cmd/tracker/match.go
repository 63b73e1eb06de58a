package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/application-tracker/internal/jobs"
	"github.com/jonathan/application-tracker/internal/logger"
	"github.com/jonathan/application-tracker/internal/matching"
	"github.com/jonathan/application-tracker/internal/schemas"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Match views
const (
	viewAll         = "all"
	viewResume      = "resume"
	viewCoverLetter = "cover-letter"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank chunks by relevance to a job description",
	Long: `Scores chunks against a job description's keywords and required and preferred skills.
Chunks come from a segment output file (--chunks) or, when no file is given, from the database.`,
	RunE: runMatch,
}

var (
	matchJobFile      string
	matchChunksFile   string
	matchView         string
	matchApprovedOnly bool
	matchOutput       string
)

func init() {
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job description JSON file (required)")
	matchCmd.Flags().StringVarP(&matchChunksFile, "chunks", "c", "", "Path to segment output JSON file (default: stored chunks)")
	matchCmd.Flags().StringVar(&matchView, "view", viewAll, "Chunks to rank: all, resume or cover-letter")
	matchCmd.Flags().BoolVar(&matchApprovedOnly, "approved-only", false, "Only rank approved stored chunks")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Output file path (default stdout)")
	matchCmd.Flags().Float64("min-score", matching.DefaultMinScore, "Minimum relevance score")
	matchCmd.Flags().Int("max-results", matching.DefaultMaxResults, "Maximum number of matches")
	matchCmd.Flags().Int("backfill", matching.DefaultBackfill, "Resume chunks added to the cover-letter view")

	if err := matchCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	job, err := jobs.LoadJobDescription(matchJobFile)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	var pool []types.Chunk
	if matchChunksFile != "" {
		pool, err = loadChunkFile(matchChunksFile)
	} else {
		pool, err = loadStoredPool(ctx, matchApprovedOnly)
	}
	if err != nil {
		return err
	}

	matches, err := selectMatches(matchView, job, pool, state.cfg.Match.Options())
	if err != nil {
		return err
	}
	output := types.ChunkMatches{Matches: matches}

	state.logger.Info("ranked chunks",
		zap.String("view", matchView),
		zap.Int(logger.FieldChunks, len(pool)),
		zap.Int(logger.FieldMatches, len(matches)),
	)

	if err := schemas.ValidateValue(schemas.ChunkMatches, output); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}

	if verbose {
		state.printer.PrintJobDescription(job)
		state.printer.PrintMatches(fmt.Sprintf("MATCHES (%s)", matchView), matches)
	}

	if err := writeJSON(matchOutput, output); err != nil {
		return err
	}
	if matchOutput != "" {
		fmt.Fprintf(os.Stderr, "Ranked %d of %d chunks to %s\n", len(matches), len(pool), matchOutput)
	}
	return nil
}

// selectMatches runs the scorer view named by view.
func selectMatches(view string, job *types.JobDescription, pool []types.Chunk, opts matching.Options) ([]types.ChunkMatch, error) {
	switch view {
	case viewAll:
		return matching.FindRelevantChunks(job, pool, opts), nil
	case viewResume:
		return matching.FindResumeChunks(job, pool, opts), nil
	case viewCoverLetter:
		return matching.FindCoverLetterChunks(job, pool, opts), nil
	default:
		return nil, fmt.Errorf("unknown view %q: must be %s, %s or %s", view, viewAll, viewResume, viewCoverLetter)
	}
}

// loadChunkFile reads the chunks of every successfully segmented document in a
// segment output file, in document order.
func loadChunkFile(path string) ([]types.Chunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunks file %s: %w", path, err)
	}

	var docs []segmentedDocument
	if err := json.Unmarshal(content, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse chunks file %s: %w", path, err)
	}

	var pool []types.Chunk
	for _, doc := range docs {
		if !doc.Result.Success {
			continue
		}
		pool = append(pool, doc.Result.Chunks...)
	}
	return pool, nil
}

func loadStoredPool(ctx context.Context, approvedOnly bool) ([]types.Chunk, error) {
	pg, err := state.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer pg.Close()

	return storedPool(ctx, pg, approvedOnly)
}

func storedPool(ctx context.Context, chunkStore store.ChunkStore, approvedOnly bool) ([]types.Chunk, error) {
	stored, err := chunkStore.ListAll(ctx, store.ListFilter{ApprovedOnly: approvedOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list stored chunks: %w", err)
	}
	return store.Pool(stored), nil
}
