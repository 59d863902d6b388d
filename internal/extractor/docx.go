package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrExtractionFailed, err)
	}
	if len(doc.Document.Body.Items) == 0 {
		return "", fmt.Errorf("%w: docx: document has no body", ErrExtractionFailed)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			b.WriteString(it.String())
			b.WriteByte('\n')
		case *docx.Table:
			writeTable(&b, it)
		}
	}

	return normalizeWhitespace(b.String()), nil
}

// writeTable puts one row per line with cells separated by tabs. Requirement matrices in
// RFPs are usually tables, so nested tables are flattened into their cell.
func writeTable(b *strings.Builder, table *docx.Table) {
	for _, row := range table.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			cells = append(cells, cellText(cell))
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
}

func cellText(cell *docx.WTableCell) string {
	parts := make([]string, 0, len(cell.Paragraphs))
	for _, p := range cell.Paragraphs {
		if text := strings.TrimSpace(p.String()); text != "" {
			parts = append(parts, text)
		}
	}
	for _, nested := range cell.Tables {
		var b strings.Builder
		writeTable(&b, nested)
		if text := strings.TrimSpace(b.String()); text != "" {
			parts = append(parts, strings.ReplaceAll(text, "\n", " "))
		}
	}
	return strings.Join(parts, " ")
}
