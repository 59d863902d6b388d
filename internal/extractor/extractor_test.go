package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a single page PDF with one line of Helvetica text and a valid xref table.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	stream := fmt.Sprintf("BT /F1 18 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	doc := docx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		doc.AddParagraph().AddText(p)
	}

	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)

	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	text, err := Extract([]byte("Scope of work\nDeliver a portal."), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "Scope of work\nDeliver a portal.", text)
}

func TestExtractDOCX(t *testing.T) {
	data := buildDOCX(t, "Request for Proposal", "Section 1: Requirements")

	text, err := Extract(data, MimeDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Request for Proposal\nSection 1: Requirements", text)

	// .doc that is really an OOXML container
	text, err = Extract(data, MimeDOC)
	require.NoError(t, err)
	assert.Contains(t, text, "Requirements")
}

func TestExtractDOCXTable(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("Requirements matrix")
	table := doc.AddTable(2, 2, 0, nil)
	table.TableRows[0].TableCells[0].AddParagraph().AddText("ID")
	table.TableRows[0].TableCells[1].AddParagraph().AddText("Requirement")
	table.TableRows[1].TableCells[0].AddParagraph().AddText("R1")
	table.TableRows[1].TableCells[1].AddParagraph().AddText("Single sign-on")

	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)

	text, err := Extract(buf.Bytes(), MimeDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Requirements matrix\nID\tRequirement\nR1\tSingle sign-on", text)
}

func TestExtractDOCXRejectsGarbage(t *testing.T) {
	_, err := Extract([]byte("not a zip archive"), MimeDOCX)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractPDF(t *testing.T) {
	data := buildPDF(t, "Hello RFP World")

	doc, err := New().ExtractDocument(data, MimePDF)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Hello")
	assert.Equal(t, 1, doc.PageCount)
}

func TestExtractFailures(t *testing.T) {
	_, err := Extract([]byte("not a pdf"), MimePDF)
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, err = Extract([]byte("\xd0\xcf\x11\xe0 legacy doc"), MimeDOC)
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, err = Extract([]byte{0x89, 'P', 'N', 'G'}, "image/png")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		filename string
		header   string
		want     string
	}{
		{"rfp.pdf", "application/pdf", MimePDF},
		{"rfp.pdf", "application/octet-stream", MimePDF},
		{"RFP.DOCX", "", MimeDOCX},
		{"notes.txt", "", MimeText},
		{"image.png", "image/png", "image/png"},
		{"blob", "", "application/octet-stream"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectMimeType(tt.filename, tt.header), tt.filename)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "héé", Truncate("héééé", 3))
	assert.Equal(t, "", Truncate("abc", 0))

	long := strings.Repeat("x", 60000)
	assert.Len(t, Truncate(long, 50000), 50000)
}
