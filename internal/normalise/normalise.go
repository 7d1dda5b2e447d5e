// Package normalise turns downloaded exhibits into plain text for indexing.
//
// Every entry point is best effort: malformed input yields whatever text
// could be recovered, never an error.
package normalise

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

var logger = logger_i.NewLogger("Normaliser")

var (
	blankLines   = regexp.MustCompile(`\n{3,}`)
	inlineSpaces = regexp.MustCompile(`[ \t\f\v\x{00a0}\x{2009}\x{202f}]+`)
)

// Text converts a raw document to plain text in reading order.
func Text(doc commonModels.RawDocument) string {
	docType := doc.ContentType
	if docType == "" || docType == commonModels.ERR {
		docType = DetectType(doc.Name, doc.Content)
	}

	var text string
	switch docType {
	case commonModels.HTML:
		text = HTMLToText(string(doc.Content))
	case commonModels.PDF:
		text = PDFToText(doc.Content)
	default:
		text = string(doc.Content)
	}
	return tidy(text)
}

// DetectType guesses the document type from its name, falling back to
// sniffing the first bytes.
func DetectType(name string, content []byte) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".htm", ".html", ".xhtml":
		return commonModels.HTML
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	case ".txt":
		return commonModels.TXT
	}

	head := bytes.TrimSpace(content)
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.HasPrefix(head, []byte("%PDF-")) {
		return commonModels.PDF
	}
	lower := bytes.ToLower(head)
	for _, marker := range []string{"<!doctype html", "<html", "<?xml", "<body", "<div", "<p", "<table"} {
		if bytes.Contains(lower, []byte(marker)) {
			return commonModels.HTML
		}
	}
	return commonModels.TXT
}

// tidy trims every line, squeezes inline whitespace and keeps at most one
// blank line between paragraphs.
func tidy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpaces.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
