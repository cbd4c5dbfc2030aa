// Package scraper wires fetch, parse, classify, extract and dedup into one
// pipeline run per URL.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"smartscrape/internal/classifier"
	"smartscrape/internal/extractor"
	"smartscrape/internal/models"
	"smartscrape/internal/parser"
	"smartscrape/internal/schema"
)

// Fetcher retrieves rendered HTML for a URL. The HTTP client satisfies it;
// tests swap in canned pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, contentType string, err error)
}

type Scraper struct {
	fetcher    Fetcher
	classifier *classifier.Classifier
}

func New(f Fetcher) *Scraper {
	return &Scraper{
		fetcher:    f,
		classifier: classifier.New(),
	}
}

// Scrape runs the full pipeline for one URL. Any unexpected failure inside
// the run surfaces as an error; it never panics past this entry point.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (result *models.ScrapeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = eris.Errorf("scraper: unexpected failure: %v", r)
		}
	}()

	html, ct, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: fetch")
	}

	doc, err := parser.Parse(strings.NewReader(html), ct)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: parse")
	}

	// structured data comes off the raw tree; cleanup strips script nodes
	schemaData := schema.Extract(doc)
	parser.Clean(doc)

	base, _ := url.Parse(rawURL)
	contentType := s.classifier.Classify(doc)
	zap.L().Debug("page classified",
		zap.String("url", rawURL),
		zap.String("content_type", string(contentType)),
	)

	res := &models.ScrapeResult{
		PageTitle:   parser.CleanText(doc.Find("title").First().Text()),
		ContentType: contentType,
		URL:         rawURL,
		SchemaData:  schemaData,
	}

	switch contentType {
	case models.TypeJobListing:
		res.Jobs = extractor.Dedup(extractor.Jobs(doc, base))
	case models.TypeProduct:
		res.Products = extractor.Dedup(extractor.Products(doc, base))
	case models.TypeArticle:
		res.Articles = extractor.Dedup(extractor.Articles(doc, base))
	case models.TypeTableData:
		res.Tables = extractor.Tables(doc)
	case models.TypeDirectory:
		res.Links = extractor.Links(doc, base)
	case models.TypeImageGallery:
		res.Images = extractor.Images(doc, base)
	default:
		// form pages and general pages share the fallback extraction
		res.Headings = extractor.Headings(doc)
		res.MainContent = extractor.MainContent(doc)
		res.Links = extractor.GeneralLinks(doc, base)
	}
	return res, nil
}

// ScrapeJobs runs the paginated job session: pages are fetched one at a time
// in page order, stopping at maxPages or at the first page yielding zero
// records. Title dedup carries across pages; results append in page order.
func (s *Scraper) ScrapeJobs(ctx context.Context, baseURL string, maxPages int) ([]models.Job, error) {
	if maxPages <= 0 {
		maxPages = 5
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: parse base url")
	}

	dedup := extractor.NewDeduper()
	var all []models.Job
	for page := 1; page <= maxPages; page++ {
		u := pageURL(baseURL, page)
		html, ct, err := s.fetcher.Fetch(ctx, u)
		if err != nil {
			return nil, eris.Wrapf(err, "scraper: fetch page %d", page)
		}
		doc, err := parser.Parse(strings.NewReader(html), ct)
		if err != nil {
			return nil, eris.Wrapf(err, "scraper: parse page %d", page)
		}
		parser.Clean(doc, parser.PaginatedNoiseTags...)

		jobs := extractor.Jobs(doc, base)
		if len(jobs) == 0 {
			// empty page means no more data, not an error
			zap.L().Info("no more jobs, stopping", zap.Int("page", page))
			break
		}
		all = append(all, extractor.Filter(dedup, jobs)...)
		zap.L().Info("scraped job page", zap.String("url", u), zap.Int("jobs", len(jobs)))
	}
	return all, nil
}

// pageURL appends ?page=N, replacing an existing page query when present.
func pageURL(base string, page int) string {
	if i := strings.Index(base, "?page="); i >= 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s?page=%d", base, page)
}
