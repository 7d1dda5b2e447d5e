package commonModels

import "strings"

// FilingReference identifies the filing a run summarises.
type FilingReference struct {
	Ticker string `json:"ticker"`
	Form   string `json:"form"`
}

func (r FilingReference) Normalised(defaultForm string) FilingReference {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	r.Form = strings.ToUpper(strings.TrimSpace(r.Form))
	if r.Form == "" {
		r.Form = defaultForm
	}
	return r
}

type Filing struct {
	CIK             string    `json:"cik"`
	Company         string    `json:"company"`
	AccessionNumber string    `json:"accession_number"`
	FilingDate      string    `json:"filing_date"`
	Form            string    `json:"form"`
	Exhibits        []Exhibit `json:"exhibits"`
}

// Exhibit is one row of a filing's document table.
type Exhibit struct {
	Sequence     string `json:"sequence"`
	Description  string `json:"description"`
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
}

// RawDocument is the downloaded exhibit body. It lives for one run.
type RawDocument struct {
	Reference   FilingReference
	Exhibit     Exhibit
	Name        string
	ContentType DocType
	Content     []byte
}

type DocChunk struct {
	ChunkId    string `json:"chunk_id"`
	Chunk      string `json:"content"`
	ChunkOrder int    `json:"chunk_order"`
	Source     string `json:"source"`
}

type DocType string

var HTML DocType = "HTML"
var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"
