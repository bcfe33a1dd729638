package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourceCmd = &cobra.Command{
	Use:     "source",
	Aliases: []string{"sources"},
	Short:   "Manage document sources",
	Long:  `List, inspect and remove sources. Sources are created implicitly by ingest.`,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sources",
	RunE:  runSourceList,
}

var sourceGetCmd = &cobra.Command{
	Use:   "get [source-id]",
	Short: "Show a source's counters",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceGet,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a source and every document/chunk it owns",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

var sourceResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all sources, documents and indexes",
	RunE:  runSourceReset,
}

// deleteCmd is a top-level alias for "source remove", matching the
// bare "delete <src>" surface.
var deleteCmd = &cobra.Command{
	Use:   "delete [source-id]",
	Short: "Remove a source and every document/chunk it owns",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

// resetCmd is a top-level alias for "source reset".
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all sources, documents and indexes",
	RunE:  runSourceReset,
}

func init() {
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceGetCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	sourceCmd.AddCommand(sourceResetCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resetCmd)
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No configured sources.")
		return nil
	}

	cmd.Println("Configured sources:")
	cmd.Println()
	for i := range sources {
		cmd.Printf("  %s\n", sources[i].ID)
		cmd.Printf("    Name:   %s\n", sources[i].DisplayName)
		cmd.Printf("    Docs:   %d\n", sources[i].DocCount)
		cmd.Printf("    Chunks: %d\n", sources[i].ChunkCount)
		cmd.Println()
	}
	return nil
}

func runSourceGet(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	src, err := sourceService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get source: %w", err)
	}

	cmd.Printf("Source: %s\n", src.ID)
	cmd.Printf("  Name:    %s\n", src.DisplayName)
	cmd.Printf("  Docs:    %d\n", src.DocCount)
	cmd.Printf("  Chunks:  %d\n", src.ChunkCount)
	cmd.Printf("  Created: %s\n", src.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated: %s\n", src.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.DeleteSource(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Printf("Removed source: %s\n", args[0])
	return nil
}

func runSourceReset(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.Reset(context.Background()); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}

	cmd.Println("All sources, documents and indexes have been wiped.")
	return nil
}
