package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartscrape/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	return st
}

func TestRunLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Create(ctx, "https://acme.test/careers")
	require.NoError(t, err)

	result := &models.ScrapeResult{
		PageTitle:   "Careers",
		ContentType: models.TypeJobListing,
		URL:         "https://acme.test/careers",
		Jobs:        []models.Job{{Title: "Engineer", Company: "Acme"}},
	}
	require.NoError(t, st.Finish(ctx, id, result))

	run, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusComplete, run.Status)
	assert.Equal(t, models.TypeJobListing, run.ContentType)
	require.NotNil(t, run.Result)
	require.Len(t, run.Result.Jobs, 1)
	assert.Equal(t, "Engineer", run.Result.Jobs[0].Title)
}

func TestFailRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Create(ctx, "https://down.test")
	require.NoError(t, err)
	require.NoError(t, st.Fail(ctx, id, eris.New("connection refused")))

	run, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "connection refused")
	assert.Nil(t, run.Result)
}

func TestListNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, u := range []string{"https://a.test", "https://b.test", "https://c.test"} {
		id, err := st.Create(ctx, u)
		require.NoError(t, err)
		// pin created_at an hour apart so ordering is unambiguous
		_, err = st.db.ExecContext(ctx,
			`UPDATE runs SET created_at = ? WHERE id = ?`,
			base.Add(time.Duration(i)*time.Hour), id,
		)
		require.NoError(t, err)
	}

	runs, err := st.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "https://c.test", runs[0].URL)
	assert.Equal(t, "https://b.test", runs[1].URL)
}

func TestGetUnknownRun(t *testing.T) {
	st := newTestStore(t)
	_, err := st.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFinishUnknownRun(t *testing.T) {
	st := newTestStore(t)
	err := st.Finish(context.Background(), "nope", &models.ScrapeResult{})
	require.Error(t, err)
}
