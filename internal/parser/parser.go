package parser

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html/charset"
)

// NoiseTags are removed from every document before extraction runs.
var NoiseTags = []string{"script", "style", "noscript", "iframe", "svg"}

// PaginatedNoiseTags are additionally removed in the paginated job session,
// where page chrome like footers and headers would otherwise pollute
// container discovery.
var PaginatedNoiseTags = []string{"meta", "link", "footer", "header"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace into single spaces and trims the
// result. Empty input yields an empty string.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Parse decodes the body to UTF-8 (honoring the declared content type) and
// builds a document tree. Malformed HTML is tolerated by the underlying
// parser.
func Parse(r io.Reader, contentType string) (*goquery.Document, error) {
	buf := new(bytes.Buffer)
	_, _ = io.Copy(buf, r)
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return nil, eris.Wrap(err, "parser: decode to utf-8")
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return nil, eris.Wrap(err, "parser: build document")
	}
	return doc, nil
}

// Clean strips noise tags from the document in place. Extra tag names extend
// the default set. Call once right after Parse; the document is not mutated
// afterwards.
func Clean(doc *goquery.Document, extra ...string) {
	tags := make([]string, 0, len(NoiseTags)+len(extra))
	tags = append(tags, NoiseTags...)
	tags = append(tags, extra...)
	doc.Find(strings.Join(tags, ",")).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
}

// ClassMatches reports whether any keyword occurs as a substring of the class
// attribute value, case-insensitively. An absent or empty class attribute
// never matches. Keywords are expected lowercase.
func ClassMatches(classAttr string, keywords []string) bool {
	if classAttr == "" {
		return false
	}
	lower := strings.ToLower(classAttr)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FindByClass returns, in document order, every element under sel matching
// one of the comma-separated tags whose class attribute matches the keyword
// set. Nested matches are all returned; deduplication happens downstream.
func FindByClass(sel *goquery.Selection, tags string, keywords []string) *goquery.Selection {
	return sel.Find(tags).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return ClassMatches(s.AttrOr("class", ""), keywords)
	})
}
