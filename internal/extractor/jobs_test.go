package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobsKeywordContainers(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="job-listing">
  <h3 class="position-title">Data Engineer</h3>
  <div class="company-name">Initech</div>
  <p class="location-tag">Remote</p>
  <div class="job-description">Pipelines all day.</div>
  <a href="/careers/42">View</a>
</div>
<div class="vacancy"><a href="https://ext.test/apply">Apply here</a></div>
<div class="job-listing"></div>
</body></html>`)

	jobs := Jobs(doc, mustURL(t, "https://initech.test/careers"))
	require.Len(t, jobs, 2)

	assert.Equal(t, "Data Engineer", jobs[0].Title)
	assert.Equal(t, "Initech", jobs[0].Company)
	assert.Equal(t, "Remote", jobs[0].Location)
	assert.Equal(t, "Pipelines all day.", jobs[0].Description)
	assert.Equal(t, "https://initech.test/careers/42", jobs[0].Link)

	// second record kept on link alone; title taken from the anchor text
	assert.Equal(t, "Apply here", jobs[1].Title)
	assert.Equal(t, "https://ext.test/apply", jobs[1].Link)
}

func TestJobsGenericFallbackContainers(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<li class="result-card"><h2>Frontend Dev</h2><a href="/j/9">go</a></li>
</body></html>`)

	jobs := Jobs(doc, mustURL(t, "https://board.test/"))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Frontend Dev", jobs[0].Title)
	assert.Equal(t, "https://board.test/j/9", jobs[0].Link)
}

func TestJobsDropContainersWithoutTitleOrLink(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="job-box"><span class="company">Ghost Co</span></div>
</body></html>`)
	assert.Empty(t, Jobs(doc, mustURL(t, "https://x.test/")))
}
