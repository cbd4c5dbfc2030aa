package extractor

import "strings"

// Titled is implemented by record kinds that carry a dedup identity.
type Titled interface {
	DedupTitle() string
}

// Deduper tracks seen titles, so paginated sessions can carry the seen set
// across pages.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Filter keeps each record the first time its lowercased title is seen.
// Records without a title are always kept. Order-preserving, single pass.
func Filter[T Titled](d *Deduper, in []T) []T {
	if len(in) == 0 {
		return in
	}
	out := make([]T, 0, len(in))
	for _, rec := range in {
		title := rec.DedupTitle()
		if title == "" {
			out = append(out, rec)
			continue
		}
		key := strings.ToLower(title)
		if _, ok := d.seen[key]; ok {
			continue
		}
		d.seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// Dedup is the one-shot form used on single-page scrapes.
func Dedup[T Titled](in []T) []T {
	return Filter(NewDeduper(), in)
}
