package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:     "doc",
	Aliases: []string{"docs"},
	Short:   "Inspect and remove indexed documents",
}

var docListCmd = &cobra.Command{
	Use:   "list [source-id]",
	Short: "List documents for a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocList,
}

var docGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document's metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocGet,
}

var docContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print a document's full content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocContent,
}

var docRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document and its chunks from the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocRemove,
}

func init() {
	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docGetCmd)
	docCmd.AddCommand(docContentCmd)
	docCmd.AddCommand(docRemoveCmd)
	rootCmd.AddCommand(docCmd)
}

func runDocList(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sourceID := args[0]
	docs, err := sourceService.ListDocuments(context.Background(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for source: %s\n", sourceID)
		return nil
	}

	cmd.Printf("Documents for source %s:\n\n", sourceID)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		if docs[i].URI != "" {
			cmd.Printf("    URI: %s\n", docs[i].URI)
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocGet(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	doc, err := sourceService.GetDocument(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:    %s\n", doc.Title)
	cmd.Printf("  Source:   %s\n", doc.SourceID)
	cmd.Printf("  URI:      %s\n", doc.URI)
	cmd.Printf("  MIME:     %s\n", doc.MIMEHint)
	cmd.Printf("  Bytes:    %d\n", doc.ByteLen)
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocContent(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	doc, err := sourceService.GetDocument(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(doc.Content)
	return nil
}

func runDocRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.DeleteDocument(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed document: %s\n", args[0])
	return nil
}
