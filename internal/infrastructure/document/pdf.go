package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// TextExtractor turns a document's raw bytes into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFExtractor extracts plain text from PDF bytes.  Non-PDF payloads are
// passed through as-is when they look like text, which covers the plan pages
// served as HTML.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor { return &PDFExtractor{} }

func (e *PDFExtractor) ExtractText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperrors.New(apperrors.ErrCodeDocumentParseFailed,
				fmt.Sprintf("pdf parse panic: %v", r))
		}
	}()

	if len(data) == 0 {
		return "", apperrors.New(apperrors.ErrCodeDocumentParseFailed, "empty document body")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return string(data), nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeDocumentParseFailed, "opening pdf")
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Individual pages can carry fonts the extractor cannot
			// decode; skip them rather than failing the document.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", apperrors.New(apperrors.ErrCodeDocumentParseFailed,
			fmt.Sprintf("no extractable text in %d page pdf", numPages))
	}
	return out, nil
}
