package classifier

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartscrape/internal/models"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestClassifyGeneralOnEmptyBoard(t *testing.T) {
	cl := New()
	d := doc(t, `<html><body><p>nothing structured here</p></body></html>`)
	assert.Equal(t, models.TypeGeneral, cl.Classify(d))
}

func TestClassifyJobListing(t *testing.T) {
	cl := New()
	d := doc(t, `<html><body>
<div class="job-card">a</div>
<div class="job-card">b</div>
<div class="vacancy">c</div>
</body></html>`)
	assert.Equal(t, models.TypeJobListing, cl.Classify(d))
}

func TestClassifyDataTablesBeatGenericMatches(t *testing.T) {
	cl := New()
	var b strings.Builder
	b.WriteString("<html><body>")
	// 4 tables, each with 4 rows: weight 4 + 4*5 = 24
	for i := 0; i < 4; i++ {
		b.WriteString("<table><tr><th>h</th></tr><tr><td>1</td></tr><tr><td>2</td></tr><tr><td>3</td></tr></table>")
	}
	// 5 product-class divs should lose
	for i := 0; i < 5; i++ {
		b.WriteString(`<div class="product">p</div>`)
	}
	b.WriteString("</body></html>")

	d := doc(t, b.String())
	assert.Equal(t, models.TypeTableData, cl.Classify(d))

	for _, s := range cl.Scores(d) {
		if s.Type == models.TypeTableData {
			assert.GreaterOrEqual(t, s.Weight, 5*4)
		}
	}
}

func TestClassifyFormWeight(t *testing.T) {
	cl := New()
	d := doc(t, `<html><body><form></form><form></form><div class="item">x</div></body></html>`)
	// 2 forms x3 = 6 beats one product-keyword div
	assert.Equal(t, models.TypeForm, cl.Classify(d))
}

func TestClassifyDirectoryNeedsOver30Links(t *testing.T) {
	cl := New()
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 31; i++ {
		b.WriteString(`<a href="/x">l</a>`)
	}
	b.WriteString("</body></html>")
	assert.Equal(t, models.TypeDirectory, cl.Classify(doc(t, b.String())))

	b.Reset()
	b.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		b.WriteString(`<a href="/x">l</a>`)
	}
	b.WriteString("</body></html>")
	assert.Equal(t, models.TypeGeneral, cl.Classify(doc(t, b.String())))
}

func TestClassifyImageGallerySignalIsBoolean(t *testing.T) {
	cl := New()
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 11; i++ {
		b.WriteString(`<img src="/a.png">`)
	}
	b.WriteString("</body></html>")
	d := doc(t, b.String())

	for _, s := range cl.Scores(d) {
		if s.Type == models.TypeImageGallery {
			assert.Equal(t, 1, s.Weight)
		}
	}
	assert.Equal(t, models.TypeImageGallery, cl.Classify(d))
}

func TestClassifyTieGoesToEvaluationOrder(t *testing.T) {
	cl := New()
	// one job div and one product div: equal weight 1, job_listing is
	// evaluated first and must win deterministically
	d := doc(t, `<html><body><div class="job">a</div><div class="product">b</div></body></html>`)
	assert.Equal(t, models.TypeJobListing, cl.Classify(d))
}
