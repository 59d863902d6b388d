package autorfp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

/*
 * tdewolff/canvas works in mm. Pages are A4.
 */
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 20.0
	// Long paragraphs are laid out in chunks so one box never exceeds a page
	maxChunkRunes = 900
)

var ErrFontRequired = errors.New("a font file is required to render pdf exports")

type PDFExporter struct {
	fontPath     string
	boldFontPath string
}

// NewPDFExporter uses boldFontPath for headings when it is set, otherwise the regular font.
func NewPDFExporter(fontPath, boldFontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath, boldFontPath: boldFontPath}
}

func (pe *PDFExporter) loadFonts() (*canvas.FontFamily, error) {
	if pe.fontPath == "" {
		return nil, ErrFontRequired
	}

	family := canvas.NewFontFamily("export")
	if err := family.LoadFontFile(pe.fontPath, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("failed to load font file: %w", err)
	}

	bold := pe.boldFontPath
	if bold == "" {
		bold = pe.fontPath
	}
	if err := family.LoadFontFile(bold, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("failed to load bold font file: %w", err)
	}

	return family, nil
}

type pageWriter struct {
	family  *canvas.FontFamily
	dir     string
	pages   []string
	current *canvas.Canvas
	ctx     *canvas.Context
	y       float64
}

func (pw *pageWriter) newPage() error {
	if err := pw.flush(); err != nil {
		return err
	}

	pw.current = canvas.New(pageWidthMM, pageHeightMM)
	pw.ctx = canvas.NewContext(pw.current)
	// Change coordination from bottom-left to top-left
	pw.ctx.SetCoordSystem(canvas.CartesianIV)
	pw.y = marginMM
	return nil
}

func (pw *pageWriter) flush() error {
	if pw.current == nil {
		return nil
	}

	out := filepath.Join(pw.dir, fmt.Sprintf("page-%04d.pdf", len(pw.pages)+1))
	if err := renderers.Write(out, pw.current); err != nil {
		return fmt.Errorf("failed to write PDF page: %w", err)
	}
	pw.pages = append(pw.pages, out)
	pw.current = nil
	return nil
}

func (pw *pageWriter) write(text string, size float64, style canvas.FontStyle, spacing float64) error {
	face := pw.family.Face(size, canvas.Hex("#111827"), style, canvas.FontNormal)
	width := pageWidthMM - 2*marginMM
	available := pageHeightMM - 2*marginMM

	for _, chunk := range chunkRunes(text, maxChunkRunes) {
		rt := canvas.NewRichText(face)
		rt.WriteString(chunk)
		box := rt.ToText(width, available, canvas.Left, canvas.Top, 0.0, 0.0)
		height := box.Bounds().H

		if pw.y+height > pageHeightMM-marginMM {
			if err := pw.newPage(); err != nil {
				return err
			}
		}

		pw.ctx.DrawText(marginMM, pw.y, box)
		pw.y += height + spacing
	}
	return nil
}

// Export renders doc to outFile. Each page is drawn separately and merged with pdfcpu.
func (pe *PDFExporter) Export(doc ExportDocument, outFile string) error {
	family, err := pe.loadFonts()
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "autorfp_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	pw := &pageWriter{family: family, dir: dir}
	if err := pw.newPage(); err != nil {
		return err
	}

	if err := pw.write(doc.Title, 22, canvas.FontBold, 4); err != nil {
		return err
	}
	if doc.Subtitle != "" {
		if err := pw.write(doc.Subtitle, 12, canvas.FontRegular, 8); err != nil {
			return err
		}
	}

	for _, section := range doc.Sections {
		if err := pw.write(section.Title, 16, canvas.FontBold, 3); err != nil {
			return err
		}
		for _, para := range strings.Split(section.Body, "\n") {
			if strings.TrimSpace(para) == "" {
				continue
			}
			if err := pw.write(para, 11, canvas.FontRegular, 2); err != nil {
				return err
			}
		}
		pw.y += 4
	}

	if err := pw.flush(); err != nil {
		return err
	}

	if err := api.MergeCreateFile(pw.pages, outFile, false, nil); err != nil {
		return fmt.Errorf("failed to merge PDF pages: %w", err)
	}
	return nil
}

func chunkRunes(text string, size int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	for len(runes) > size {
		cut := size
		// Prefer to break on a space
		for i := size; i > size/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
