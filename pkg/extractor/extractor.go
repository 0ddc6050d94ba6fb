package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrUnsupportedType marks an upload whose extension is outside the
// accepted set.
var ErrUnsupportedType = errors.New("unsupported file type")

// SupportedExtensions lists accepted upload extensions, lowercased.
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

// Extract converts uploaded binary content into plain text, dispatching on
// the file extension.
func Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return extractPDF(data)
	case ".md":
		if err := validUTF8(data); err != nil {
			return "", err
		}
		return extractMarkdown(data)
	case ".txt":
		if err := validUTF8(data); err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s. Supported: %s", ErrUnsupportedType, ext, strings.Join(SupportedExtensions, ", "))
	}
}

// validUTF8 rejects binary content smuggled in under a text extension.
func validUTF8(data []byte) error {
	if !utf8.Valid(data) {
		return errors.New("file is not valid utf-8 text")
	}
	return nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("create pdf reader: %w", err)
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if pageText != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.Join(pages, " "), nil
}

func extractMarkdown(data []byte) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var buf bytes.Buffer
	if err := md.Convert(data, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	return stripHTML(buf.String()), nil
}

// stripHTML drops tags from rendered markdown and collapses whitespace,
// keeping only the visible text separated by single spaces.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
