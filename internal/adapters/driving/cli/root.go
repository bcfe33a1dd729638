// Package cli implements the eywa command-line interface: ingesting
// documents, searching the local index, inspecting sources and
// documents, and starting the MCP server.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/eywa-run/eywa/internal/core/ports/driven"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
	"github.com/eywa-run/eywa/internal/logger"
)

var (
	searchService driving.SearchService
	sourceService driving.SourceService
	ingestService driving.IngestService
	engineService driving.EngineService
	configStore   driven.ConfigStore

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "eywa",
	Short: "A local-first personal knowledge base and retrieval engine",
	Long: `eywa ingests documents, embeds and indexes them on-device, and serves
hybrid (dense + lexical) search with cross-encoder reranking. Everything
runs locally; no document content or query ever leaves the machine.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic logging")
}

// Services aggregates the driving-port and config-store implementations
// the CLI dispatches to. Bind installs them before Execute is called.
type Services struct {
	Search driving.SearchService
	Source driving.SourceService
	Ingest driving.IngestService
	Engine driving.EngineService
	Config driven.ConfigStore
}

// Bind wires the command handlers to their backing services. It must
// be called once during startup before Execute.
func Bind(s Services) {
	searchService = s.Search
	sourceService = s.Source
	ingestService = s.Ingest
	engineService = s.Engine
	configStore = s.Config
}

// Execute runs the root command with os.Args.
func Execute() error {
	return rootCmd.Execute()
}
