package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eywa-run/eywa/internal/core/domain"
)

var (
	searchLimit     int
	searchJSON      bool
	searchNoRerank  bool
	searchSourceIDs []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Performs hybrid search across all indexed documents.
Combines lexical (BM25) and semantic (dense vector) retrieval, then
reranks the fused candidates with a cross-encoder.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchNoRerank, "no-rerank", false, "skip the cross-encoder rerank stage")
	searchCmd.Flags().StringSliceVar(&searchSourceIDs, "source", nil, "restrict results to these source IDs")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		Limit:     searchLimit,
		SourceIDs: searchSourceIDs,
		Rerank:    !searchNoRerank,
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// displayScore prefers the cross-encoder score when reranking ran,
// falling back to the fused dense/lexical score otherwise.
func displayScore(r domain.SearchResult) float64 {
	if r.RerankScore != 0 {
		return r.RerankScore
	}
	return r.FusedScore
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Document.Title
		if title == "" {
			title = results[i].Document.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, displayScore(results[i]))
		if results[i].SourceName != "" {
			cmd.Printf("      Source: %s\n", results[i].SourceName)
		}
		if snippet := results[i].Chunk.Text; snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	return nil
}
