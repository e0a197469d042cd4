package document

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// maxDocumentBytes bounds the response body read.  Plan chapter PDFs run a
// few megabytes; anything past this is not a plan document.
const maxDocumentBytes = 64 << 20

// Fetcher retrieves a document's raw bytes.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches documents over HTTP with a per-request timeout.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher constructs a fetcher.  A non-positive timeout falls back to
// 30 seconds.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, apperrors.New(apperrors.ErrCodeDocumentURLInvalid,
			fmt.Sprintf("not an absolute URL: %q", rawURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentURLInvalid, "building request")
	}
	req.Header.Set("Accept", "application/pdf, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentUnreachable,
			fmt.Sprintf("fetching %s", rawURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodeDocumentUnreachable,
			fmt.Sprintf("fetching %s: status %d", rawURL, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentUnreachable,
			fmt.Sprintf("reading %s", rawURL))
	}
	if len(body) > maxDocumentBytes {
		return nil, apperrors.New(apperrors.ErrCodeDocumentParseFailed,
			fmt.Sprintf("%s exceeds the %d byte document limit", rawURL, maxDocumentBytes))
	}
	return body, nil
}
