package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

func TestHTTPFetcher_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("chapter text"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)
	got, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("chapter text"), got)
}

func TestHTTPFetcher_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDocumentUnreachable, apperrors.GetCode(err))
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	f := NewHTTPFetcher(5 * time.Second)
	for _, raw := range []string{"", "not a url", "/relative/path"} {
		_, err := f.Fetch(context.Background(), raw)
		require.Error(t, err, raw)
		assert.Equal(t, apperrors.ErrCodeDocumentURLInvalid, apperrors.GetCode(err), raw)
	}
}

func TestHTTPFetcher_ConnectionRefused(t *testing.T) {
	f := NewHTTPFetcher(time.Second)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/doc.pdf")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDocumentUnreachable, apperrors.GetCode(err))
}

func TestPDFExtractor_PassthroughNonPDF(t *testing.T) {
	e := NewPDFExtractor()
	got, err := e.ExtractText([]byte("<html>plan text</html>"))
	require.NoError(t, err)
	assert.Equal(t, "<html>plan text</html>", got)
}

func TestPDFExtractor_EmptyBody(t *testing.T) {
	e := NewPDFExtractor()
	_, err := e.ExtractText(nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDocumentParseFailed, apperrors.GetCode(err))
}

func TestPDFExtractor_CorruptPDF(t *testing.T) {
	e := NewPDFExtractor()
	_, err := e.ExtractText([]byte("%PDF-1.7 garbage"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDocumentParseFailed, apperrors.GetCode(err))
}
