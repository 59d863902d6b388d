package extractor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func extractPDF(data []byte) (doc Document, err error) {
	// The pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return Document{}, fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return Document{}, fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, err)
	}

	return Document{
		Text:      normalizeWhitespace(string(text)),
		PageCount: pageCount(data, reader.NumPage()),
	}, nil
}

// pageCount prefers pdfcpu's count and falls back to what the text reader saw.
func pageCount(data []byte, fallback int) int {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
