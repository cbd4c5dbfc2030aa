package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartscrape/internal/models"
)

func TestDedupCaseInsensitiveOrderPreserving(t *testing.T) {
	in := []models.Job{
		{Title: "Engineer", Company: "A"},
		{Title: "Designer", Company: "B"},
		{Title: "ENGINEER", Company: "C"},
		{Title: "Analyst", Company: "D"},
	}

	out := Dedup(in)
	require.Len(t, out, 3)
	assert.Equal(t, "Engineer", out[0].Title)
	assert.Equal(t, "A", out[0].Company)
	assert.Equal(t, "Designer", out[1].Title)
	assert.Equal(t, "Analyst", out[2].Title)
}

func TestDedupIdempotent(t *testing.T) {
	in := []models.Job{
		{Title: "One"}, {Title: "Two"}, {Title: "one"}, {Title: "Three"},
	}
	once := Dedup(in)
	twice := Dedup(once)
	assert.Equal(t, once, twice)
}

func TestDedupKeepsUntitledRecords(t *testing.T) {
	in := []models.Job{
		{Title: "", Link: "https://a.test/1"},
		{Title: "", Link: "https://a.test/2"},
		{Title: "Named"},
	}
	out := Dedup(in)
	assert.Len(t, out, 3)
}

func TestDedupProductsNeverDrops(t *testing.T) {
	// products carry no title field, so the pass keeps every record
	in := []models.Product{
		{Name: "Widget"}, {Name: "Widget"},
	}
	assert.Len(t, Dedup(in), 2)
}

func TestDeduperCarriesSeenAcrossPasses(t *testing.T) {
	d := NewDeduper()
	first := Filter(d, []models.Job{{Title: "Role"}})
	second := Filter(d, []models.Job{{Title: "Role"}, {Title: "Other"}})
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "Other", second[0].Title)
}
