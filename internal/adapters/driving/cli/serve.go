package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/eywa-run/eywa/internal/adapters/driving/httpapi"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the JSON REST API over search, ingest and source/document inspection.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server := httpapi.NewServer(&httpapi.Ports{
		Search: searchService,
		Source: sourceService,
		Ingest: ingestService,
		Engine: engineService,
	})

	addr := fmt.Sprintf(":%d", servePort)
	cmd.Printf("HTTP API listening on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, server)
}
