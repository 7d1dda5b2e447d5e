package normalise

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/lu4p/cat"
)

// ReadFile loads a locally saved exhibit. Office formats are converted to
// text on the way in; everything else is kept as raw bytes for Text.
func ReadFile(path string, ref commonModels.FilingReference) (commonModels.RawDocument, error) {
	name := filepath.Base(path)
	doc := commonModels.RawDocument{
		Reference: ref,
		Name:      name,
		Exhibit: commonModels.Exhibit{
			Name: name,
			URL:  path,
		},
	}

	info, err := os.Stat(path)
	if err != nil {
		return doc, fmt.Errorf("reading exhibit: %w", err)
	}
	doc.Exhibit.Size = info.Size()

	if DetectType(name, nil) == commonModels.DOCX {
		text, err := cat.File(path)
		if err != nil {
			return doc, fmt.Errorf("extracting %s: %w", name, err)
		}
		doc.ContentType = commonModels.TXT
		doc.Content = []byte(text)
		return doc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("reading exhibit: %w", err)
	}
	doc.Content = content
	doc.ContentType = DetectType(name, content)
	return doc, nil
}
