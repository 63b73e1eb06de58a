package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	"github.com/spf13/cobra"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Review stored chunks",
}

var chunksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored chunks",
	Args:  cobra.NoArgs,
	RunE:  runChunksList,
}

var chunksShowCmd = &cobra.Command{
	Use:   "show <chunk-id>",
	Short: "Show one stored chunk",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunksShow,
}

var chunksEditCmd = &cobra.Command{
	Use:   "edit <chunk-id>",
	Short: "Correct the type, text or tags of a stored chunk",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunksEdit,
}

var chunksApproveCmd = &cobra.Command{
	Use:   "approve <chunk-id>",
	Short: "Mark a stored chunk as approved for matching",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunksApprove,
}

var chunksDeleteCmd = &cobra.Command{
	Use:   "delete [chunk-id]",
	Short: "Delete a stored chunk, or every chunk of a document with --document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChunksDelete,
}

var (
	chunksDocument     string
	chunksApprovedOnly bool
	chunksTypes        []string
	chunksRevoke       bool
	chunksEditType     string
	chunksEditText     string
	chunksEditTags     []string
)

func init() {
	chunksListCmd.Flags().StringVar(&chunksDocument, "document", "", "Only list chunks of this document ID")
	chunksListCmd.Flags().BoolVar(&chunksApprovedOnly, "approved-only", false, "Only list approved chunks")
	chunksListCmd.Flags().StringSliceVar(&chunksTypes, "type", nil, "Only list chunks of these types")

	chunksEditCmd.Flags().StringVar(&chunksEditType, "type", "", "New chunk type")
	chunksEditCmd.Flags().StringVar(&chunksEditText, "text", "", "New chunk text")
	chunksEditCmd.Flags().StringSliceVar(&chunksEditTags, "tags", nil, "Replacement tags")

	chunksApproveCmd.Flags().BoolVar(&chunksRevoke, "revoke", false, "Withdraw approval instead")

	chunksDeleteCmd.Flags().StringVar(&chunksDocument, "document", "", "Delete every chunk of this document ID")

	chunksCmd.AddCommand(chunksListCmd, chunksShowCmd, chunksEditCmd, chunksApproveCmd, chunksDeleteCmd)
	rootCmd.AddCommand(chunksCmd)
}

// withStore opens the database store for the duration of fn
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s store.ChunkStore) error) error {
	ctx := cmd.Context()
	pg, err := state.openStore(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()
	return fn(ctx, pg)
}

func runChunksList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, s store.ChunkStore) error {
		chunks, err := listChunks(ctx, s, chunksDocument, chunksApprovedOnly, chunksTypes)
		if err != nil {
			return err
		}
		return writeJSON("", chunks)
	})
}

func runChunksShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, s store.ChunkStore) error {
		c, err := s.GetChunk(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return writeJSON("", c)
	})
}

func runChunksEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	update, err := buildUpdate(
		cmd.Flags().Changed("type"), chunksEditType,
		cmd.Flags().Changed("text"), chunksEditText,
		cmd.Flags().Changed("tags"), chunksEditTags,
	)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, s store.ChunkStore) error {
		c, err := s.UpdateChunk(ctx, id, update)
		if err != nil {
			return err
		}
		return writeJSON("", c)
	})
}

func runChunksApprove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, s store.ChunkStore) error {
		if err := s.SetApproved(ctx, id, !chunksRevoke); err != nil {
			return err
		}
		if chunksRevoke {
			fmt.Fprintf(os.Stderr, "Revoked approval of chunk %s\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Approved chunk %s\n", id)
		}
		return nil
	})
}

func runChunksDelete(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 1 && chunksDocument != "":
		return fmt.Errorf("give either a chunk ID or --document, not both")
	case len(args) == 0 && chunksDocument == "":
		return fmt.Errorf("a chunk ID or --document is required")
	}

	return withStore(cmd, func(ctx context.Context, s store.ChunkStore) error {
		if chunksDocument != "" {
			docID, err := parseID(chunksDocument)
			if err != nil {
				return err
			}
			n, err := s.DeleteByDocument(ctx, docID)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Deleted %d chunk(s) of document %s\n", n, docID)
			return nil
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := s.DeleteChunk(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted chunk %s\n", id)
		return nil
	})
}

// listChunks lists the chunks of one document, or all chunks matching the filters.
func listChunks(ctx context.Context, s store.ChunkStore, document string, approvedOnly bool, typeNames []string) ([]store.StoredChunk, error) {
	if document != "" {
		docID, err := parseID(document)
		if err != nil {
			return nil, err
		}
		return s.ListByDocument(ctx, docID)
	}

	filter := store.ListFilter{ApprovedOnly: approvedOnly}
	for _, name := range typeNames {
		ct, err := parseChunkType(name)
		if err != nil {
			return nil, err
		}
		filter.Types = append(filter.Types, ct)
	}
	return s.ListAll(ctx, filter)
}

// buildUpdate assembles a chunk update from the edit flags that were set.
func buildUpdate(typeSet bool, typeName string, textSet bool, text string, tagsSet bool, tags []string) (store.ChunkUpdate, error) {
	var update store.ChunkUpdate
	if !typeSet && !textSet && !tagsSet {
		return update, fmt.Errorf("nothing to edit: set --type, --text or --tags")
	}

	if typeSet {
		ct, err := parseChunkType(typeName)
		if err != nil {
			return update, err
		}
		update.Type = &ct
	}
	if textSet {
		update.Text = &text
	}
	if tagsSet {
		update.Tags = tags
		if update.Tags == nil {
			update.Tags = []string{}
		}
	}
	return update, nil
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ID %q: %w", s, err)
	}
	return id, nil
}

func parseChunkType(s string) (types.ChunkType, error) {
	ct, ok := types.ParseChunkType(s)
	if !ok {
		return "", fmt.Errorf("unknown chunk type %q", s)
	}
	return ct, nil
}
