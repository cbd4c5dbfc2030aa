package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartscrape/internal/parser"
)

func TestExtract(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"@type":"JobPosting","title":"Engineer"}</script>
<script type="application/ld+json">not json at all</script>
<script type="application/ld+json">{}</script>
<script type="application/ld+json">null</script>
<script type="application/ld+json">[{"@type":"Product"}]</script>
</head><body></body></html>`

	doc, err := parser.Parse(strings.NewReader(html), "")
	require.NoError(t, err)

	blocks := Extract(doc)
	require.Len(t, blocks, 2)
	assert.Contains(t, string(blocks[0]), "JobPosting")
	assert.Contains(t, string(blocks[1]), "Product")
}

func TestExtractNoneReturnsNil(t *testing.T) {
	doc, err := parser.Parse(strings.NewReader(`<html><body><p>plain</p></body></html>`), "")
	require.NoError(t, err)
	assert.Nil(t, Extract(doc))
}
