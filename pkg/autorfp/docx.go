package autorfp

import (
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// Run sizes are in half points.
const (
	docxTitleSize    = "36"
	docxSubtitleSize = "24"
	docxHeadingSize  = "28"
	docxBodySize     = "22"
)

// WriteDocx writes doc as a Word document: a bold paragraph per heading and one paragraph per
// body line.
func WriteDocx(w io.Writer, doc ExportDocument) error {
	file := docx.New().WithDefaultTheme().WithA4Page()

	file.AddParagraph().Justification("center").AddText(doc.Title).Size(docxTitleSize).Bold()
	if doc.Subtitle != "" {
		file.AddParagraph().Justification("center").AddText(doc.Subtitle).Size(docxSubtitleSize).Italic()
	}

	for _, section := range doc.Sections {
		file.AddParagraph().AddText(section.Title).Size(docxHeadingSize).Bold()
		for _, line := range strings.Split(section.Body, "\n") {
			file.AddParagraph().AddText(line).Size(docxBodySize)
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write docx: %w", err)
	}
	return nil
}
