package classifier

import (
	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

// keyword sets per candidate type (extend as needed)
var (
	jobKeywords     = []string{"job", "career", "position", "listing", "vacancy"}
	productKeywords = []string{"product", "item", "goods", "merchandise"}
	articleKeywords = []string{"article", "post", "blog", "news"}
)

type Classifier struct{}

func New() *Classifier { return &Classifier{} }

// Score pairs a candidate content type with its heuristic weight.
type Score struct {
	Type   models.ContentType
	Weight int
}

// Scores evaluates every candidate type against the document. Slice order is
// the fixed evaluation order and doubles as the tie-break order: on equal
// weights the earlier entry wins.
func (c *Classifier) Scores(doc *goquery.Document) []Score {
	scores := []Score{
		{models.TypeJobListing, parser.FindByClass(doc.Selection, "div", jobKeywords).Length()},
		{models.TypeProduct, parser.FindByClass(doc.Selection, "div", productKeywords).Length()},
		{models.TypeArticle, parser.FindByClass(doc.Selection, "article,div", articleKeywords).Length()},
		{models.TypeTableData, tableWeight(doc)},
		{models.TypeImageGallery, galleryWeight(doc)},
	}
	if n := doc.Find("form").Length(); n > 0 {
		scores = append(scores, Score{models.TypeForm, n * 3})
	}
	if n := doc.Find("a[href]").Length(); n > 30 {
		scores = append(scores, Score{models.TypeDirectory, n})
	}
	return scores
}

// Classify assigns exactly one content type: the strictly highest weight in
// evaluation order. An all-zero scoreboard falls back to general.
func (c *Classifier) Classify(doc *goquery.Document) models.ContentType {
	winner := models.TypeGeneral
	best := 0
	for _, s := range c.Scores(doc) {
		if s.Weight > best {
			best = s.Weight
			winner = s.Type
		}
	}
	return winner
}

func tableWeight(doc *goquery.Document) int {
	w := doc.Find("table").Length()
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		// reward data-dense tables over layout tables
		if t.Find("tr").Length() > 3 {
			w += 5
		}
	})
	return w
}

func galleryWeight(doc *goquery.Document) int {
	if doc.Find("img").Length() > 10 {
		return 1
	}
	return 0
}
