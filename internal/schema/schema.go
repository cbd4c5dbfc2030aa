// Package schema opportunistically pulls embedded structured-data blocks
// (JSON-LD) out of a parsed page.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extract decodes every application/ld+json script block in the document.
// Blocks that fail to decode or decode to empty content are skipped; the
// pass never fails the scrape. Returns nil when no block survives.
func Extract(doc *goquery.Document) []json.RawMessage {
	var blocks []json.RawMessage
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			// malformed block, skip it and keep going
			return
		}
		if isEmpty(v) {
			return
		}
		blocks = append(blocks, json.RawMessage(raw))
	})
	return blocks
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
