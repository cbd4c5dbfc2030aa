package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

// Links extracts every anchor that points somewhere real: in-page anchors
// and javascript pseudo-links are skipped, and entries without visible text
// are dropped. All URLs come out absolute.
func Links(doc *goquery.Document, base *url.URL) []models.Link {
	var links []models.Link
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		text := parser.CleanText(a.Text())
		if text == "" {
			return
		}
		links = append(links, models.Link{
			Text: text,
			URL:  resolveURL(base, href),
		})
	})
	return links
}
