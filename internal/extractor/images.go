package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

// Images extracts every image with a real source; inline data URIs are
// skipped. Alt text defaults to empty.
func Images(doc *goquery.Document, base *url.URL) []models.Image {
	var images []models.Image
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		images = append(images, models.Image{
			URL: resolveURL(base, src),
			Alt: parser.CleanText(img.AttrOr("alt", "")),
		})
	})
	return images
}
