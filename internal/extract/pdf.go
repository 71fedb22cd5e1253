// Package extract turns source documents into plain text.
package extract

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nutriware/nutrirag/internal/domain"
)

// Extractor turns a readable document into plain text.
type Extractor interface {
	Extract(path string) (string, error)
}

// PDFExtractor extracts text from PDF files page by page.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the concatenated text of every page in source order.
// Pages that yield no extractable text contribute nothing and never fail
// the document. A document that cannot be opened or parsed returns
// domain.ErrExtractionFailed; the caller skips it and continues.
func (e *PDFExtractor) Extract(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeExtractionFailed,
			fmt.Sprintf("failed to open %s", filepath.Base(path)), err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeExtractionFailed,
			fmt.Sprintf("failed to stat %s", filepath.Base(path)), err)
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeExtractionFailed,
			fmt.Sprintf("failed to parse %s", filepath.Base(path)), err)
	}

	var builder strings.Builder
	pageCount := reader.NumPage()
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("extract: page %d of %s yielded no text: %v", i, filepath.Base(path), err)
			continue
		}
		builder.WriteString(text)
	}

	return builder.String(), nil
}
