// Command eywa is a local-first personal knowledge base and hybrid
// retrieval engine. It ingests documents, embeds and indexes them
// on-device, and serves dense + lexical search with cross-encoder
// reranking over the CLI and MCP.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eywa-run/eywa/internal/adapters/driven/config/file"
	"github.com/eywa-run/eywa/internal/adapters/driven/storage/lexical"
	"github.com/eywa-run/eywa/internal/adapters/driven/storage/sqlite"
	"github.com/eywa-run/eywa/internal/adapters/driven/storage/vector"
	"github.com/eywa-run/eywa/internal/adapters/driving/cli"
	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
	"github.com/eywa-run/eywa/internal/core/services"
	"github.com/eywa-run/eywa/internal/logger"
	"github.com/eywa-run/eywa/internal/modelruntime"
	"github.com/eywa-run/eywa/internal/normalisers"
	"github.com/eywa-run/eywa/internal/normalisers/docx"
	"github.com/eywa-run/eywa/internal/normalisers/eml"
	"github.com/eywa-run/eywa/internal/normalisers/html"
	"github.com/eywa-run/eywa/internal/normalisers/markdown"
	"github.com/eywa-run/eywa/internal/normalisers/pdf"
	"github.com/eywa-run/eywa/internal/normalisers/plaintext"
)

// jobPruneInterval is how often stale jobs are swept from the job
// store. It runs well inside the store's own retention window so
// completed jobs don't linger indefinitely in a long-running process.
const jobPruneInterval = time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eywa: %v\n", err)
		os.Exit(domain.ExitCode(err))
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".eywa")

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settings, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening content store: %w", err)
	}
	defer store.Close()

	vectors, err := vector.New(dataDir, store.DB(), settings.Embedding.Dimensions)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}

	lexicalStore, err := lexical.New(dataDir, store.DB())
	if err != nil {
		return fmt.Errorf("opening lexical store: %w", err)
	}

	registry := normalisers.NewRegistry()
	registry.Register(markdown.New())
	registry.Register(pdf.New())
	registry.Register(html.New())
	registry.Register(eml.New())
	registry.Register(docx.New())
	registry.Register(plaintext.New())

	runtime, err := modelruntime.New(
		modelPath(dataDir, settings.Embedding.RepoID),
		modelPath(dataDir, settings.Reranker.RepoID),
		settings.Device,
	)
	if err != nil {
		return fmt.Errorf("loading model runtime: %w", err)
	}

	ingestService := services.NewIngestService(
		registry,
		runtime,
		store.ContentStore(),
		vectors,
		lexicalStore,
		store.SourceStore(),
		store.JobStore(),
		store.DiagnosticStore(),
		settings.Chunking,
	)

	go pruneJobsPeriodically(store.JobStore())

	searchService := services.NewSearchService(
		runtime,
		vectors,
		lexicalStore,
		store.ContentStore(),
		store.SourceStore(),
		settings.Fusion,
	)

	sourceService := services.NewSourceService(
		store.ContentStore(),
		vectors,
		lexicalStore,
		store.SourceStore(),
	)

	engineService := services.NewEngineService(
		runtime,
		store.SourceStore(),
		store.DiagnosticStore(),
		settings,
	)

	cli.Bind(cli.Services{
		Search: searchService,
		Source: sourceService,
		Ingest: ingestService,
		Engine: engineService,
		Config: configStore,
	})

	logger.Debug("eywa started, data dir %s", dataDir)

	return cli.Execute()
}

// pruneJobsPeriodically sweeps terminal jobs off the job store on a
// fixed interval for the lifetime of the process. It runs in its own
// goroutine and never returns.
func pruneJobsPeriodically(jobs driven.JobStore) {
	ticker := time.NewTicker(jobPruneInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := jobs.Prune(context.Background()); err != nil {
			logger.Warn("job prune failed: %v", err)
		}
	}
}

// modelPath maps a model's Hugging Face-style repo ID to its cached
// weights file under the data directory's models subdirectory, e.g.
// "sentence-transformers/all-MiniLM-L6-v2" resolves to
// "<dataDir>/models/sentence-transformers__all-MiniLM-L6-v2.gguf".
func modelPath(dataDir, repoID string) string {
	name := strings.ReplaceAll(repoID, "/", "__")
	return filepath.Join(dataDir, "models", name+".gguf")
}
