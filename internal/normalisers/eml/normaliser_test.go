package eml

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
	assert.Contains(t, mimeTypes, "message/rfc822")
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

func TestNormalise_SimpleEmail(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	emlContent := `From: sender@example.com
To: recipient@example.com
Subject: Test Email Subject
Date: Mon, 01 Jan 2024 10:00:00 +0000
Content-Type: text/plain

This is the body of the email.
It has multiple lines.
`

	in := domain.DocInput{
		URI:      "/path/to/email.eml",
		MIMEType: "message/rfc822",
		Content:  []byte(emlContent),
	}

	result, err := normaliser.Normalise(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Test Email Subject", result.Title)
	assert.Contains(t, result.Content, "This is the body of the email")
	assert.Contains(t, result.Content, "sender@example.com")
	assert.Contains(t, result.Content, "recipient@example.com")
}

func TestNormalise_NoSubject(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	emlContent := `From: sender@example.com
To: recipient@example.com
Content-Type: text/plain

Email without subject.
`

	in := domain.DocInput{
		URI:      "/path/to/my_email.eml",
		MIMEType: "message/rfc822",
		Content:  []byte(emlContent),
	}

	result, err := normaliser.Normalise(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "my email", result.Title)
}

func TestNormalise_HTMLBody(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	emlContent := `From: sender@example.com
To: recipient@example.com
Subject: HTML Email
Content-Type: text/html

<html>
<body>
<h1>Hello</h1>
<p>This is <b>HTML</b> content.</p>
</body>
</html>
`

	in := domain.DocInput{
		URI:      "/path/to/email.eml",
		MIMEType: "message/rfc822",
		Content:  []byte(emlContent),
	}

	result, err := normaliser.Normalise(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Contains(t, result.Content, "Hello")
	assert.Contains(t, result.Content, "HTML content")
	assert.NotContains(t, result.Content, "<h1>")
	assert.NotContains(t, result.Content, "<p>")
}

func TestNormalise_MultipartAlternative(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	emlContent := `From: sender@example.com
To: recipient@example.com
Subject: Multipart Email
Content-Type: multipart/alternative; boundary="boundary123"

--boundary123
Content-Type: text/plain

Plain text version of the email.
--boundary123
Content-Type: text/html

<html><body><p>HTML version</p></body></html>
--boundary123--
`

	in := domain.DocInput{
		URI:      "/path/to/email.eml",
		MIMEType: "message/rfc822",
		Content:  []byte(emlContent),
	}

	result, err := normaliser.Normalise(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Contains(t, result.Content, "Plain text version")
}

func TestNormalise_EncodedSubject(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	emlContent := `From: sender@example.com
To: recipient@example.com
Subject: =?UTF-8?B?VGVzdCBFbWFpbCDwn5iA?=
Content-Type: text/plain

Body content.
`

	in := domain.DocInput{
		URI:      "/path/to/email.eml",
		MIMEType: "message/rfc822",
		Content:  []byte(emlContent),
	}

	result, err := normaliser.Normalise(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Title)
}

func TestNormalise_InvalidEmail(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	in := domain.DocInput{
		URI:      "/path/to/email.eml",
		MIMEType: "message/rfc822",
		Content:  []byte("not a valid email"),
	}

	result, err := normaliser.Normalise(ctx, in)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "Simple Subject",
			expected: "Simple Subject",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "utf8 base64 encoded",
			input:    "=?UTF-8?B?SGVsbG8gV29ybGQ=?=",
			expected: "Hello World",
		},
		{
			name:     "utf8 quoted printable",
			input:    "=?UTF-8?Q?Hello_World?=",
			expected: "Hello World",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := decodeHeader(tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestStripHTMLTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple html",
			input:    "<p>Hello</p>",
			expected: "Hello",
		},
		{
			name:     "nested tags",
			input:    "<div><p>Hello <b>World</b></p></div>",
			expected: "Hello World",
		},
		{
			name:     "with whitespace",
			input:    "<p>Line 1</p>\n\n<p>Line 2</p>",
			expected: "Line 1\nLine 2",
		},
		{
			name:     "no tags",
			input:    "Plain text",
			expected: "Plain text",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := stripHTMLTags(tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestExtractTitleFromURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "simple filename",
			uri:      "/path/to/email.eml",
			expected: "email",
		},
		{
			name:     "with underscores",
			uri:      "/path/to/my_email_file.eml",
			expected: "my email file",
		},
		{
			name:     "with dashes",
			uri:      "/path/to/my-email-file.eml",
			expected: "my email file",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := extractTitleFromURI(tc.uri)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
