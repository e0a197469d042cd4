package prefetch

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise-nz/planwise/internal/domain/overlay"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

type recordingPrefetcher struct {
	mu     sync.Mutex
	urls   map[string]int
	errFor map[string]error
}

func (r *recordingPrefetcher) Prefetch(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.urls == nil {
		r.urls = make(map[string]int)
	}
	r.urls[url]++
	return r.errFor[url]
}

func TestCatalogURLs_CoversAllCatalogEntries(t *testing.T) {
	urls := CatalogURLs()
	set := make(map[string]bool, len(urls))
	for _, u := range urls {
		assert.False(t, set[u], "duplicate url %s", u)
		set[u] = true
	}
	for _, info := range zone.All() {
		assert.True(t, set[info.DocumentURL], info.Code)
	}
	for _, info := range overlay.AllTypes() {
		assert.True(t, set[info.DocumentURL], string(info.Type))
	}
}

func TestRun_WarmsEveryURL(t *testing.T) {
	p := &recordingPrefetcher{}
	w := NewWarmer(p, 4, nil)

	failed := w.Run(context.Background())
	require.Zero(t, failed)
	assert.Len(t, p.urls, len(CatalogURLs()))
	for url, count := range p.urls {
		assert.Equal(t, 1, count, url)
	}
}

func TestRun_CountsFailuresWithoutAborting(t *testing.T) {
	urls := CatalogURLs()
	require.NotEmpty(t, urls)

	p := &recordingPrefetcher{errFor: map[string]error{
		urls[0]: apperrors.New(apperrors.ErrCodeDocumentUnreachable, "down"),
	}}
	w := NewWarmer(p, 2, nil)

	failed := w.Run(context.Background())
	assert.Equal(t, 1, failed)
	assert.Len(t, p.urls, len(urls))
}
