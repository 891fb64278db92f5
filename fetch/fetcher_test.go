package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/halcyonlabs/corpus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webSource(t *testing.T, url string) core.Source {
	t.Helper()
	return core.Source{Identifier: url, Kind: core.KindWeb}
}

func TestFetchWeb(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer server.Close()

		f, err := NewFetcher()
		require.NoError(t, err)

		result, err := f.Fetch(context.Background(), webSource(t, server.URL))
		require.NoError(t, err)
		assert.Contains(t, string(result.Data), "hello")
		assert.Contains(t, result.ContentType, "text/html")
		assert.Equal(t, server.URL, result.Source.Identifier)
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		f, err := NewFetcher()
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), webSource(t, server.URL))
		assert.Equal(t, core.ReasonNotFound, core.ReasonOf(err))
	})

	t.Run("server error classifies as network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		f, err := NewFetcher()
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), webSource(t, server.URL))
		assert.Equal(t, core.ReasonNetworkError, core.ReasonOf(err))
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer server.Close()

		f, err := NewFetcher(WithTimeout(100 * time.Millisecond))
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), webSource(t, server.URL))
		assert.Equal(t, core.ReasonTimeout, core.ReasonOf(err))
	})

	t.Run("untrusted certificate classifies as ssl error", func(t *testing.T) {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		f, err := NewFetcher()
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), webSource(t, server.URL))
		assert.Equal(t, core.ReasonSSLError, core.ReasonOf(err))
	})

	t.Run("insecure mode accepts untrusted certificate", func(t *testing.T) {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("secret garden"))
		}))
		defer server.Close()

		f, err := NewFetcher(WithInsecureTLS(true))
		require.NoError(t, err)

		result, err := f.Fetch(context.Background(), webSource(t, server.URL))
		require.NoError(t, err)
		assert.Contains(t, string(result.Data), "secret garden")
	})

	t.Run("content size cap", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, 2048))
		}))
		defer server.Close()

		f, err := NewFetcher(WithMaxContentSize(1024))
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), webSource(t, server.URL))
		assert.Equal(t, core.ReasonNetworkError, core.ReasonOf(err))
	})
}

func TestFetchFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		f, err := NewFetcher()
		require.NoError(t, err)

		src := core.Source{Identifier: filepath.Join(t.TempDir(), "missing.pdf"), Kind: core.KindPDF}
		_, err = f.Fetch(context.Background(), src)
		assert.Equal(t, core.ReasonNotFound, core.ReasonOf(err))
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0644))

		f, err := NewFetcher()
		require.NoError(t, err)

		result, err := f.Fetch(context.Background(), core.Source{Identifier: path, Kind: core.KindPDF})
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", result.ContentType)
		assert.NotEmpty(t, result.Data)
	})

	t.Run("directory is unsupported", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "dir.pdf")
		require.NoError(t, os.Mkdir(dir, 0755))

		f, err := NewFetcher()
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), core.Source{Identifier: dir, Kind: core.KindPDF})
		assert.Equal(t, core.ReasonUnsupportedType, core.ReasonOf(err))
	})
}

func TestFetchUnclassifiedSource(t *testing.T) {
	f, err := NewFetcher()
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), core.Source{Identifier: "notes.txt"})
	assert.Equal(t, core.ReasonUnsupportedType, core.ReasonOf(err))
}

func TestFetcherOptions(t *testing.T) {
	t.Run("invalid timeout", func(t *testing.T) {
		_, err := NewFetcher(WithTimeout(0))
		assert.Error(t, err)
	})

	t.Run("invalid max content size", func(t *testing.T) {
		_, err := NewFetcher(WithMaxContentSize(-1))
		assert.Error(t, err)
	})

	t.Run("empty user agent", func(t *testing.T) {
		_, err := NewFetcher(WithUserAgent(""))
		assert.Error(t, err)
	})
}
