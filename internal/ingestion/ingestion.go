// Package ingestion turns uploaded résumé or profile documents into plain
// text suitable for skill extraction and scoring. HTML documents are
// stripped of markup; anything else is treated as plain text.
package ingestion

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxDocumentBytes bounds accepted uploads.
const maxDocumentBytes = 2 << 20

var whitespaceRe = regexp.MustCompile(`[ \t\r\f\v]+`)
var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// ExtractText reads a document and returns its cleaned plain text. The
// content type decides the extraction path; types other than HTML pass
// through as text.
func ExtractText(r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if len(data) > maxDocumentBytes {
		return "", fmt.Errorf("document exceeds %d bytes", maxDocumentBytes)
	}

	if IsHTML(contentType, data) {
		return extractHTML(data)
	}
	return cleanText(string(data)), nil
}

// IsHTML reports whether the document should take the HTML extraction path,
// either by declared content type or by sniffing the payload.
func IsHTML(contentType string, data []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml") {
		return true
	}
	head := strings.ToLower(string(data[:min(len(data), 512)]))
	head = strings.TrimSpace(head)
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// extractHTML strips markup and non-content elements, keeping block
// boundaries as line breaks.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, iframe, nav, footer").Remove()

	var b strings.Builder
	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		b.WriteString(blockText(body))
	})
	text := b.String()
	if strings.TrimSpace(text) == "" {
		// Fragments without a body element still carry text.
		text = doc.Text()
	}
	return cleanText(text), nil
}

// blockText renders a selection's text with newlines between block elements
// so headings and list items stay separable downstream.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "#text" {
			b.WriteString(node.Text())
			return
		}
		inner := blockText(node)
		switch goquery.NodeName(node) {
		case "p", "div", "li", "br", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "section", "article", "ul", "ol", "table":
			b.WriteString("\n")
			b.WriteString(inner)
			b.WriteString("\n")
		default:
			b.WriteString(inner)
		}
	})
	return b.String()
}

// cleanText collapses runs of spaces and excess blank lines.
func cleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	text = strings.Join(lines, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
