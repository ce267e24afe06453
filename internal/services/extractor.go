package services

import (
	"bytes"
	"encoding/xml"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// allowedExtensions is the full set of upload types the extractor accepts.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

type ExtractorService interface {
	AllowedFile(filename string) bool
	ExtractText(filename string, data []byte) (string, error)
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

// AllowedFile reports whether the filename carries a supported extension.
// Only the extension is checked, case-insensitively; content is not sniffed.
func (e *extractorService) AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExtensions[ext]
}

// ExtractText converts an uploaded document into plain text. A disallowed
// extension returns ErrUnsupportedFileType; any parse failure on an allowed
// type degrades to an empty string. Uploads are attacker-controlled binary
// input, so this must never escalate a parser fault to the caller.
func (e *extractorService) ExtractText(filename string, data []byte) (string, error) {
	if !e.AllowedFile(filename) {
		return "", ErrUnsupportedFileType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data), nil
	case ".docx":
		return extractDocx(data), nil
	}

	return "", ErrUnsupportedFileType
}

// extractPDF concatenates the text of every page in order, appending a
// newline after each page. Pages with no extractable text contribute
// nothing. The pdf library panics on some malformed inputs, so the whole
// walk runs under a recover.
func extractPDF(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  PDF extraction panicked: %v", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("⚠️  Failed to open PDF: %v", err)
		return ""
	}

	var builder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}
		if pageText == "" {
			continue
		}

		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	return builder.String()
}

// extractDocx joins the text of every paragraph in document order with
// newlines. Empty paragraphs survive as empty lines.
func extractDocx(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  DOCX extraction panicked: %v", r)
			text = ""
		}
	}()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("⚠️  Failed to open DOCX: %v", err)
		return ""
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		log.Printf("⚠️  Failed to parse DOCX body: %v", err)
		return ""
	}

	return strings.Join(paragraphs, "\n")
}

// docxParagraphs walks the WordprocessingML body and collects the plain
// text of each w:p element, concatenating its w:t runs.
func docxParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteString("\t")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current.String())
				}
				inParagraph = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
