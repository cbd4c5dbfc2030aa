package extractor

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

var mainContentKeywords = []string{"main", "content", "article", "body"}

// minParagraphLen filters out boilerplate fragments from main content.
const minParagraphLen = 20

// maxGeneralLinks caps the link list on general pages.
const maxGeneralLinks = 20

// Headings returns the page's heading hierarchy, level by level, skipping
// empty headings.
func Headings(doc *goquery.Document) []models.Heading {
	var headings []models.Heading
	for level := 1; level <= 6; level++ {
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, h *goquery.Selection) {
			text := parser.CleanText(h.Text())
			if text == "" {
				return
			}
			headings = append(headings, models.Heading{Level: level, Text: text})
		})
	}
	return headings
}

// MainContent locates the densest main/content keyword container and returns
// its paragraphs, filtered to substantial ones. Pages without such a
// container fall back to all paragraphs under the same filter.
func MainContent(doc *goquery.Document) []string {
	containers := parser.FindByClass(doc.Selection, "main,article,div", mainContentKeywords)

	scope := doc.Selection
	if containers.Length() > 0 {
		var best *goquery.Selection
		bestLen := -1
		containers.Each(func(_ int, c *goquery.Selection) {
			if l := len(parser.CleanText(c.Text())); l > bestLen {
				best, bestLen = c, l
			}
		})
		scope = best
	}

	var paragraphs []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := parser.CleanText(p.Text())
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}

// GeneralLinks is the link extractor truncated for the general fallback.
func GeneralLinks(doc *goquery.Document, base *url.URL) []models.Link {
	links := Links(doc, base)
	if len(links) > maxGeneralLinks {
		links = links[:maxGeneralLinks]
	}
	return links
}
