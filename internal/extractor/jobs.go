package extractor

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

var (
	jobContainerKeywords = []string{"job", "career", "position", "listing", "vacancy"}
	companyKeywords      = []string{"company", "employer", "organization"}
	locationKeywords     = []string{"location", "place", "address", "city"}
	descriptionKeywords  = []string{"description", "summary", "detail"}
)

// Jobs extracts job listings. Containers are found by job keyword classes,
// falling back to generic list-item classes when a page labels its cards
// differently. A container yields a record only when it has a title or a
// resolvable link.
func Jobs(doc *goquery.Document, base *url.URL) []models.Job {
	containers := parser.FindByClass(doc.Selection, "div", jobContainerKeywords)
	if containers.Length() == 0 {
		containers = parser.FindByClass(doc.Selection, "div,li", genericItemKeywords)
	}

	var jobs []models.Job
	containers.Each(func(_ int, card *goquery.Selection) {
		titleElem := firstByClass(card, "h1,h2,h3,h4,a", titleKeywords)
		if titleElem == nil {
			titleElem = firstOf(card, "h1,h2,h3,h4,a")
		}

		link := ""
		if a := firstOf(card, "a[href]"); a != nil {
			link = resolveURL(base, a.AttrOr("href", ""))
		}

		title := textOf(titleElem)
		if title == "" && link == "" {
			return
		}

		jobs = append(jobs, models.Job{
			Title:       title,
			Company:     textOf(firstByClass(card, "span,div,p", companyKeywords)),
			Location:    textOf(firstByClass(card, "span,div,p", locationKeywords)),
			Description: textOf(firstByClass(card, "p,div", descriptionKeywords)),
			Link:        link,
		})
	})
	return jobs
}
