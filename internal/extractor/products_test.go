package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsNoImageOmitsImageURL(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="product-tile">
  <h3 class="product-name">Widget</h3>
  <span class="product-price">$5.00</span>
</div>
</body></html>`)

	products := Products(doc, mustURL(t, "https://shop.test/"))
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "$5.00", p.Price)
	assert.Equal(t, "", p.Link)
	assert.Equal(t, "", p.ImageURL)

	// image_url key must be absent from the serialized record
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "image_url")
}

func TestProductsImageResolvedAndDataURISkipped(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="product">
  <h3>Gadget</h3>
  <img src="/img/gadget.png">
  <a href="/p/1">view</a>
</div>
<div class="product">
  <h3>Tracker Pixel</h3>
  <img src="data:image/gif;base64,R0lGOD">
</div>
</body></html>`)

	products := Products(doc, mustURL(t, "https://shop.test/"))
	require.Len(t, products, 2)

	assert.Equal(t, "https://shop.test/img/gadget.png", products[0].ImageURL)
	assert.Equal(t, "https://shop.test/p/1", products[0].Link)

	// data URI: record kept (image present) but no image_url carried
	assert.Equal(t, "Tracker Pixel", products[1].Name)
	assert.Equal(t, "", products[1].ImageURL)
}

func TestProductsImageAloneIsEnough(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="item-card"><img src="/only.png"></div>
</body></html>`)

	products := Products(doc, mustURL(t, "https://shop.test/"))
	require.Len(t, products, 1)
	assert.Equal(t, "", products[0].Name)
	assert.Equal(t, "https://shop.test/only.png", products[0].ImageURL)
}
