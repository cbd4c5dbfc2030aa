package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

var (
	productContainerKeywords = []string{"product", "item", "goods", "merchandise"}
	productFallbackKeywords  = []string{"item", "card", "listing", "post"}
	productNameKeywords      = []string{"name", "title", "product"}
	priceKeywords            = []string{"price", "cost", "amount"}
)

// Products extracts product cards. A container yields a record when it has a
// name or an image; the image URL is carried only when the source is a real
// URL rather than an inline data URI.
func Products(doc *goquery.Document, base *url.URL) []models.Product {
	containers := parser.FindByClass(doc.Selection, "div", productContainerKeywords)
	if containers.Length() == 0 {
		containers = parser.FindByClass(doc.Selection, "div,li", productFallbackKeywords)
	}

	var products []models.Product
	containers.Each(func(_ int, card *goquery.Selection) {
		nameElem := firstByClass(card, "h1,h2,h3,h4,a", productNameKeywords)
		if nameElem == nil {
			nameElem = firstOf(card, "h1,h2,h3,h4,a")
		}

		src := ""
		if img := firstOf(card, "img"); img != nil {
			src = strings.TrimSpace(img.AttrOr("src", ""))
		}

		name := textOf(nameElem)
		if name == "" && src == "" {
			return
		}

		link := ""
		if a := firstOf(card, "a[href]"); a != nil {
			link = resolveURL(base, a.AttrOr("href", ""))
		}

		p := models.Product{
			Name:  name,
			Price: textOf(firstByClass(card, "span,div,p", priceKeywords)),
			Link:  link,
		}
		if src != "" && !strings.HasPrefix(src, "data:") {
			p.ImageURL = resolveURL(base, src)
		}
		products = append(products, p)
	})
	return products
}
