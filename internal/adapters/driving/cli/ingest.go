package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eywa-run/eywa/internal/core/domain"
)

var ingestAsync bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [source-id] [path...]",
	Short: "Ingest files into a source",
	Long: `Reads one or more files or directories from disk, normalises and
chunks them, and commits them to the index under the given source.

Directories are walked recursively; files with an unrecognised
extension are skipped.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestAsync, "async", false, "queue the ingest job and return immediately")
	rootCmd.AddCommand(ingestCmd)
}

// extToMIME maps file extensions to the MIME hints the normaliser
// registry and chunker dispatch on.
var extToMIME = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".pdf":      "application/pdf",
	".html":     "text/html",
	".htm":      "text/html",
	".eml":      "message/rfc822",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":      "text/plain",
	".go":       "text/x-go",
	".py":       "text/x-python",
	".rs":       "text/x-rust",
	".java":     "text/x-java",
	".c":        "text/x-c",
	".h":        "text/x-c",
	".cpp":      "text/x-c++",
	".hpp":      "text/x-c++",
	".rb":       "text/x-ruby",
	".sh":       "text/x-shellscript",
	".sql":      "text/x-sql",
	".csv":      "text/csv",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".toml":     "text/toml",
	".js":       "text/javascript",
	".jsx":      "text/jsx",
	".ts":       "text/typescript",
}

func mimeForPath(path string) (string, bool) {
	mime, ok := extToMIME[strings.ToLower(filepath.Ext(path))]
	return mime, ok
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	sourceID := args[0]
	paths := args[1:]

	docs, skipped, err := collectDocInputs(paths)
	if err != nil {
		return err
	}
	for _, p := range skipped {
		cmd.Printf("skipping %s: unrecognised file type\n", p)
	}
	if len(docs) == 0 {
		return errors.New("no ingestible files found")
	}

	ctx := context.Background()

	if ingestAsync {
		jobID, err := ingestService.Queue(ctx, sourceID, docs)
		if err != nil {
			return fmt.Errorf("queueing ingest: %w", err)
		}
		cmd.Printf("Queued ingest job %s (%d documents)\n", jobID, len(docs))
		return nil
	}

	report, err := ingestService.Ingest(ctx, sourceID, docs)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested: %d, deduplicated: %d, failed: %d\n", report.Ingested, report.Deduplicated, report.Failed)
	for uri, msg := range report.Errors {
		cmd.Printf("  %s: %s\n", uri, msg)
	}
	return nil
}

// collectDocInputs walks paths, reading every file with a recognised
// extension into a DocInput. Unrecognised files are returned
// separately rather than treated as an error.
func collectDocInputs(paths []string) (docs []domain.DocInput, skipped []string, err error) {
	for _, root := range paths {
		info, statErr := os.Stat(root)
		if statErr != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", root, statErr)
		}

		if !info.IsDir() {
			doc, ok, walkErr := readDocInput(root)
			if walkErr != nil {
				return nil, nil, walkErr
			}
			if !ok {
				skipped = append(skipped, root)
				continue
			}
			docs = append(docs, doc)
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			doc, ok, readErr := readDocInput(path)
			if readErr != nil {
				return readErr
			}
			if !ok {
				skipped = append(skipped, path)
				return nil
			}
			docs = append(docs, doc)
			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}
	}
	return docs, skipped, nil
}

func readDocInput(path string) (domain.DocInput, bool, error) {
	mime, ok := mimeForPath(path)
	if !ok {
		return domain.DocInput{}, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.DocInput{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	return domain.DocInput{
		URI:      path,
		MIMEType: mime,
		Content:  content,
	}, true, nil
}
