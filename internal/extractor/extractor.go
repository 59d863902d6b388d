package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	MimePDF      = "application/pdf"
	MimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC      = "application/msword"
	MimeText     = "text/plain"
	MimeMarkdown = "text/markdown"
)

var (
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrExtractionFailed = errors.New("text extraction failed")
)

var extensionTypes = map[string]string{
	".pdf":  MimePDF,
	".docx": MimeDOCX,
	".doc":  MimeDOC,
	".txt":  MimeText,
	".md":   MimeMarkdown,
}

// Document is the text of an upload plus what we could learn about its layout.
type Document struct {
	Text      string
	PageCount int
}

// Extractor is implemented by TextExtractor and faked in tests.
type Extractor interface {
	ExtractDocument(data []byte, mimeType string) (Document, error)
}

type TextExtractor struct{}

func New() TextExtractor {
	return TextExtractor{}
}

func (TextExtractor) ExtractDocument(data []byte, mimeType string) (Document, error) {
	switch normalizeMime(mimeType) {
	case MimePDF:
		return extractPDF(data)
	case MimeDOCX, MimeDOC:
		// .doc files saved by modern editors are often OOXML containers; real binary .doc
		// fails here as ErrExtractionFailed.
		text, err := extractDOCX(data)
		if err != nil {
			return Document{}, err
		}
		return Document{Text: text, PageCount: 1}, nil
	case MimeText, MimeMarkdown:
		return Document{Text: strings.ToValidUTF8(string(data), ""), PageCount: 1}, nil
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

// Extract returns the plain text of data interpreted as mimeType.
func Extract(data []byte, mimeType string) (string, error) {
	doc, err := New().ExtractDocument(data, mimeType)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func normalizeMime(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// DetectMimeType trusts the multipart header when it names a supported type and otherwise
// falls back to the file extension.
func DetectMimeType(filename, header string) string {
	header = normalizeMime(header)
	for _, supported := range extensionTypes {
		if header == supported {
			return header
		}
	}

	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}

	if header != "" {
		return header
	}
	return "application/octet-stream"
}

func IsSupported(mimeType string) bool {
	mimeType = normalizeMime(mimeType)
	for _, supported := range extensionTypes {
		if mimeType == supported {
			return true
		}
	}
	return false
}

// Truncate cuts text to at most limit characters without splitting a rune.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	var b bytes.Buffer
	n := 0
	for _, r := range text {
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
