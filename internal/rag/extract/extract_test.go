package extract

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/doclane/ragapi/internal/domain/docModel"
)

func TestDocTypeFor(t *testing.T) {
	tests := []struct {
		path     string
		expected DocType
	}{
		{"test.pdf", PDF},
		{"REPORT.PDF", PDF},
		{"doc.docx", DOC},
		{"DOC.DOCX", DOC},
		{"notes.txt", TXT},
		{"notes.TXT", TXT},
		{"report.xlsx", ERR},
		{"image.png", ERR},
		{"noextension", ERR},
	}

	for _, tt := range tests {
		if got := DocTypeFor(tt.path); got != tt.expected {
			t.Errorf("DocTypeFor(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := Extract([]byte("a,b,c"), "report.xlsx")
	if !errors.Is(err, docModel.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_PlainText(t *testing.T) {
	content := "line one\nline two"
	got, err := Extract([]byte(content), "notes.txt")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != content {
		t.Errorf("txt extraction should be verbatim, got %q want %q", got, content)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract([]byte("this is not a pdf at all"), "broken.pdf")
	if !errors.Is(err, docModel.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtract_CorruptDocx(t *testing.T) {
	_, err := Extract([]byte("not a zip archive"), "broken.docx")
	if !errors.Is(err, docModel.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

// A scratch-file failure happens inside extraction, not in the document
// store, so it must carry the extraction sentinel.
func TestExtract_DocxTempDirFailure(t *testing.T) {
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := Extract([]byte("irrelevant"), "doc.docx")
	if !errors.Is(err, docModel.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if errors.Is(err, docModel.ErrStorage) {
		t.Fatal("a local temp-file failure must not read as a storage outage")
	}
}
