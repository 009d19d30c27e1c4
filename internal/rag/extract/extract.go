package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doclane/ragapi/internal/domain/docModel"
)

// DocType is the closed set of formats the extractor understands. Dispatch is
// by filename suffix only - no magic-byte sniffing.
type DocType string

const (
	PDF DocType = "PDF"
	DOC DocType = "DOCX"
	TXT DocType = "TXT"
	ERR DocType = "ERROR"
)

func DocTypeFor(filename string) DocType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOC
	case ".txt":
		return TXT
	default:
		return ERR
	}
}

// Extract converts a raw document blob into plain text. Unknown suffixes fail
// with docModel.ErrUnsupportedFormat; a blob that cannot be parsed fails with
// docModel.ErrExtraction and nothing is salvaged from it.
func Extract(data []byte, filename string) (string, error) {
	switch DocTypeFor(filename) {
	case PDF:
		return extractPDF(data)
	case DOC:
		return extractDocx(data)
	case TXT:
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", docModel.ErrUnsupportedFormat, filename)
	}
}
