package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

const pageExtractTimeout = 10 * time.Second

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open pdf: %v", docModel.ErrExtraction, err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			//an empty page still contributes its trailing newline
			text.WriteString("\n")
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			return "", fmt.Errorf("%w: pdf page %d: %v", docModel.ErrExtraction, i, err)
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return text.String(), nil
}

// extractDocx reads a .docx blob and returns the paragraph text in document
// order, one newline after each paragraph. The cat library only takes paths,
// so the blob goes through a temp file.
func extractDocx(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "ingest-*.docx")
	if err != nil {
		return "", fmt.Errorf("%w: temp file: %v", docModel.ErrExtraction, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: temp file write: %v", docModel.ErrExtraction, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: temp file close: %v", docModel.ErrExtraction, err)
	}

	text, err := cat.File(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("%w: failed to extract docx: %v", docModel.ErrExtraction, err)
	}
	return text, nil
}

// protectExtract isolates the pdf library call - it can stall or panic on
// hostile input, and neither may take down the whole request.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("pdf parser panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		return "", fmt.Errorf("page extraction timed out")
	}
}
