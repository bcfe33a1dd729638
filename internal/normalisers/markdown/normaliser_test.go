package markdown

import (
	"context"
	"testing"

	"github.com/eywa-run/eywa/internal/core/domain"
)

func TestNormalise_ExtractsH1Title(t *testing.T) {
	n := New()
	res, err := n.Normalise(context.Background(), domain.DocInput{
		URI:     "notes.md",
		Content: []byte("# My Notes\n\nSome content here.\n"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Title != "My Notes" {
		t.Fatalf("got title %q", res.Title)
	}
}

func TestNormalise_FallsBackToFilename(t *testing.T) {
	n := New()
	res, err := n.Normalise(context.Background(), domain.DocInput{
		URI:     "project_overview.md",
		Content: []byte("no heading here"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Title != "project overview" {
		t.Fatalf("got title %q", res.Title)
	}
}

func TestNormalise_RejectsEmptyInput(t *testing.T) {
	n := New()
	if _, err := n.Normalise(context.Background(), domain.DocInput{}); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestSupportedMIMETypes(t *testing.T) {
	n := New()
	types := n.SupportedMIMETypes()
	if len(types) != 2 {
		t.Fatalf("expected 2 mime types, got %d", len(types))
	}
}
