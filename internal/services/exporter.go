package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ExporterService turns edited resume HTML into a Word document the user
// can download. Only the text structure survives the conversion: block
// elements become paragraphs, bold and headings become bold runs.
type ExporterService interface {
	FromHTML(htmlContent string) ([]byte, error)
}

type exporterService struct{}

func NewExporterService() ExporterService {
	return &exporterService{}
}

type docRun struct {
	text string
	bold bool
}

type docParagraph struct {
	runs []docRun
}

// FromHTML implements ExporterService.
func (e *exporterService) FromHTML(htmlContent string) ([]byte, error) {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	paragraphs := collectParagraphs(root)
	return writeDocx(paragraphs)
}

var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var boldTags = map[string]bool{
	"b": true, "strong": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func collectParagraphs(root *html.Node) []docParagraph {
	var paragraphs []docParagraph
	var current docParagraph

	flush := func() {
		if len(current.runs) > 0 {
			paragraphs = append(paragraphs, current)
			current = docParagraph{}
		}
	}

	// Adjacent runs with the same formatting merge into one
	appendText := func(text string, bold bool) {
		if len(current.runs) > 0 {
			last := &current.runs[len(current.runs)-1]
			if !strings.HasSuffix(last.text, " ") {
				text = " " + text
			}
			if last.bold == bold {
				last.text += text
				return
			}
		}
		current.runs = append(current.runs, docRun{text: text, bold: bold})
	}

	var walk func(n *html.Node, bold bool)
	walk = func(n *html.Node, bold bool) {
		switch n.Type {
		case html.ElementNode:
			switch {
			case n.Data == "script" || n.Data == "style":
				return
			case n.Data == "br":
				flush()
				return
			case blockTags[n.Data]:
				flush()
				if n.Data == "li" {
					current.runs = append(current.runs, docRun{text: "• "})
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, bold || boldTags[n.Data])
				}
				flush()
				return
			case boldTags[n.Data]:
				bold = true
			}
		case html.TextNode:
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				appendText(text, bold)
			}
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, bold)
		}
	}

	walk(root, false)
	flush()

	return paragraphs
}

// writeDocx assembles the minimal OPC package a Word processor needs:
// content types, the package relationships, and the document part.
func writeDocx(paragraphs []docParagraph) ([]byte, error) {
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p>")
		for _, r := range p.runs {
			body.WriteString("<w:r>")
			if r.bold {
				body.WriteString("<w:rPr><w:b/></w:rPr>")
			}
			body.WriteString(`<w:t xml:space="preserve">`)
			body.WriteString(escapeXML(r.text))
			body.WriteString("</w:t></w:r>")
		}
		body.WriteString("</w:p>")
	}

	documentXML := xml.Header +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		"<w:body>" + body.String() + "<w:sectPr/></w:body></w:document>"

	contentTypesXML := xml.Header +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	relsXML := xml.Header +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	documentRelsXML := xml.Header +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, part := range parts {
		f, err := writer.Create(part.name)
		if err != nil {
			writer.Close()
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			writer.Close()
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx: %w", err)
	}

	return buf.Bytes(), nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
