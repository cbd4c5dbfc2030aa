// Package extractor turns a cleaned document into typed records for one
// detected content type. Every extractor takes the page's base URL so
// relative links and image sources come out absolute.
package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/parser"
)

// keyword sets shared across extractors
var (
	genericItemKeywords = []string{"item", "result", "card", "listing", "post"}
	titleKeywords       = []string{"title", "name", "position"}
)

// resolveURL makes ref absolute against base. Unparseable refs resolve to "".
func resolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

// firstByClass finds the first element under container matching tags with a
// class keyword hit. Nil when nothing matches.
func firstByClass(container *goquery.Selection, tags string, keywords []string) *goquery.Selection {
	sel := parser.FindByClass(container, tags, keywords)
	if sel.Length() == 0 {
		return nil
	}
	return sel.First()
}

// firstOf is container.Find(tags).First() with a nil result on no match.
func firstOf(container *goquery.Selection, tags string) *goquery.Selection {
	sel := container.Find(tags)
	if sel.Length() == 0 {
		return nil
	}
	return sel.First()
}

func textOf(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return parser.CleanText(sel.Text())
}
