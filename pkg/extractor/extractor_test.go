package extractor

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractTxtPassthrough(t *testing.T) {
	content := "plain text body\nwith two lines"

	got, err := Extract("notes.txt", []byte(content))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != content {
		t.Errorf("Extract() = %q, want %q", got, content)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "docx", filename: "report.docx"},
		{name: "no extension", filename: "README"},
		{name: "image", filename: "scan.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.filename, []byte("irrelevant"))
			if !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("Extract(%q) error = %v, want ErrUnsupportedType", tt.filename, err)
			}
		})
	}
}

func TestExtractExtensionCaseInsensitive(t *testing.T) {
	got, err := Extract("NOTES.TXT", []byte("upper case extension"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "upper case extension" {
		t.Errorf("Extract() = %q", got)
	}
}

func TestExtractMarkdownStripsFormatting(t *testing.T) {
	md := "# Title\n\nSome **bold** text with a [link](https://example.com).\n\n- item one\n- item two\n"

	got, err := Extract("doc.md", []byte(md))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for _, want := range []string{"Title", "bold", "link", "item one", "item two"} {
		if !strings.Contains(got, want) {
			t.Errorf("extracted markdown missing %q: %q", want, got)
		}
	}
	for _, forbidden := range []string{"<", ">", "#", "**", "](", "https://example.com"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("extracted markdown still contains %q: %q", forbidden, got)
		}
	}
}

func TestExtractMarkdownTable(t *testing.T) {
	md := "| Name | Role |\n|------|------|\n| Ada | Engineer |\n"

	got, err := Extract("table.md", []byte(md))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(got, "Ada") || !strings.Contains(got, "Engineer") {
		t.Errorf("table contents lost: %q", got)
	}
}

func TestExtractRejectsBinaryAsText(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0x00, 0x01, 0x80}

	for _, filename := range []string{"binary.txt", "binary.md"} {
		t.Run(filename, func(t *testing.T) {
			_, err := Extract(filename, garbage)
			if err == nil {
				t.Fatal("expected error for invalid utf-8 content")
			}
			if errors.Is(err, ErrUnsupportedType) {
				t.Error("invalid utf-8 must not be reported as unsupported type")
			}
		})
	}
}

func TestExtractInvalidPDF(t *testing.T) {
	_, err := Extract("broken.pdf", []byte("this is not a pdf"))
	if err == nil {
		t.Fatal("expected error for malformed pdf data")
	}
	if errors.Is(err, ErrUnsupportedType) {
		t.Error("malformed pdf must not be reported as unsupported type")
	}
}
