package extractor

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

var (
	articleContainerKeywords = []string{"article", "post", "blog", "news", "entry"}
	articleTitleKeywords     = []string{"title", "heading"}
	summaryKeywords          = []string{"summary", "excerpt", "description", "content"}
	dateKeywords             = []string{"date", "time", "published"}
	authorKeywords           = []string{"author", "by", "writer"}
)

// minHeadingLen gates the heading fallback: shorter headings are navigation
// labels, not article titles.
const minHeadingLen = 15

// Articles extracts articles or blog posts. When no keyword container
// exists, every sufficiently long h1-h3 stands in, with its parent as the
// container. A container yields a record when it has a title or a summary.
func Articles(doc *goquery.Document, base *url.URL) []models.Article {
	var containers []*goquery.Selection
	parser.FindByClass(doc.Selection, "article,div", articleContainerKeywords).
		Each(func(_ int, s *goquery.Selection) {
			containers = append(containers, s)
		})
	if len(containers) == 0 {
		doc.Find("h1,h2,h3").Each(func(_ int, h *goquery.Selection) {
			if len(parser.CleanText(h.Text())) > minHeadingLen {
				containers = append(containers, h.Parent())
			}
		})
	}

	var articles []models.Article
	for _, card := range containers {
		titleElem := firstByClass(card, "h1,h2,h3,h4", articleTitleKeywords)
		if titleElem == nil {
			titleElem = firstOf(card, "h1,h2,h3,h4")
		}
		summaryElem := firstByClass(card, "p,div", summaryKeywords)
		if summaryElem == nil {
			summaryElem = firstOf(card, "p")
		}

		title := textOf(titleElem)
		summary := textOf(summaryElem)
		if title == "" && summary == "" {
			continue
		}

		// prefer a link nested under the title element
		var linkElem *goquery.Selection
		if titleElem != nil {
			linkElem = firstOf(titleElem, "a[href]")
		}
		if linkElem == nil {
			linkElem = firstOf(card, "a[href]")
		}
		link := ""
		if linkElem != nil {
			link = resolveURL(base, linkElem.AttrOr("href", ""))
		}

		articles = append(articles, models.Article{
			Title:   title,
			Summary: summary,
			Date:    textOf(firstByClass(card, "span,time,div", dateKeywords)),
			Author:  textOf(firstByClass(card, "span,div,a", authorKeywords)),
			Link:    link,
		})
	}
	return articles
}
