package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	normaliser := New()
	mimeTypes := normaliser.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "application/pdf")
	assert.Len(t, mimeTypes, 1)
}

func TestPriority(t *testing.T) {
	normaliser := New()
	assert.Equal(t, 50, normaliser.Priority())
}

func TestNormalise_RejectsEmptyInput(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	_, err := normaliser.Normalise(ctx, domain.DocInput{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_InvalidPDF(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	in := domain.DocInput{
		URI:      "/path/to/bad.pdf",
		MIMEType: "application/pdf",
		Content:  []byte("not a pdf"),
	}

	_, err := normaliser.Normalise(ctx, in)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		uri      string
		expected string
	}{
		{
			name:     "first line as title",
			content:  "Document Title\n\nSome content here.",
			uri:      "/doc.pdf",
			expected: "Document Title",
		},
		{
			name:     "skip empty lines",
			content:  "\n\n\nActual Title\nContent",
			uri:      "/doc.pdf",
			expected: "Actual Title",
		},
		{
			name:     "fallback to filename",
			content:  "",
			uri:      "/path/to/my_document.pdf",
			expected: "my document",
		},
		{
			name:     "skip very long first line",
			content:  string(make([]byte, 250)) + "\nShort Title\nContent",
			uri:      "/doc.pdf",
			expected: "Short Title",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := extractTitle(tc.content, tc.uri)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
