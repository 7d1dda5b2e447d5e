package normalise

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/dslipak/pdf"
)

const pageExtractTimeout = 10 * time.Second

// PDFToText extracts page text in page order. Pages that fail or hang are
// skipped; an unreadable file yields "".
func PDFToText(content []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pdf reader panicked", "panic", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		logger.Error("failed opening pdf", "error", err)
		return ""
	}

	var pages []string
	numPages := reader.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := protectExtract(page)
		if err != nil {
			logger.Warn("skipping pdf page", "page", i, "error", err)
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n\n")
}

// protectExtract bounds GetPlainText, which can spin on malformed streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{err: errors.New("page extraction panicked")}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		return "", errors.New("timeout")
	}
}
