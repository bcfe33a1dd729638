package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version, model configuration and corpus size",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("eywa version %s\n\n", version)

		if engineService == nil {
			return errors.New("engine service not configured")
		}
		info, err := engineService.EngineInfo(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Println("Engine")
		cmd.Println("======")
		cmd.Println()
		cmd.Printf("  Embedding model: %s (%s), %d dimensions\n", info.EmbeddingModelID, info.EmbeddingRepoID, info.EmbeddingDimensions)
		cmd.Printf("  Reranker model:  %s (%s)\n", info.RerankerModelID, info.RerankerRepoID)
		cmd.Printf("  Device:          %s\n", info.Device)
		cmd.Println()
		cmd.Printf("  Sources:   %d\n", info.Sources)
		cmd.Printf("  Documents: %d\n", info.Documents)
		cmd.Printf("  Chunks:    %d\n", info.Chunks)
		if len(info.Inconsistent) > 0 {
			cmd.Println()
			cmd.Printf("  WARNING: %d document(s) left inconsistent by a failed ingest rollback:\n", len(info.Inconsistent))
			for _, d := range info.Inconsistent {
				cmd.Printf("    - %s (source %s, step %s): %s\n", d.DocID, d.SourceID, d.Step, d.Error)
			}
		}
		cmd.Println()

		return runSettingsShow(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
