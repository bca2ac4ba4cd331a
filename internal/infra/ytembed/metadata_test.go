package ytembed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_OEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oembed", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("url"), "abc12345678")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title":"Test Video","author_name":"Test Channel"}`)
	}))
	defer server.Close()

	c := &MetadataClient{BaseURL: server.URL}
	meta, err := c.Metadata(context.Background(), "abc12345678")
	require.NoError(t, err)
	assert.Equal(t, "Test Video", meta.Title)
	assert.Equal(t, "Test Channel", meta.AuthorName)
}

func TestMetadata_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := &MetadataClient{BaseURL: server.URL}
	_, err := c.Metadata(context.Background(), "abc12345678")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestMetadata_FallsBackToWatchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oembed":
			// Not embeddable: forces the scrape fallback.
			w.WriteHeader(http.StatusUnauthorized)
		case "/watch":
			assert.Equal(t, "abc12345678", r.URL.Query().Get("v"))
			fmt.Fprint(w, `<html><head>
				<title>Scraped Title</title>
				<link itemprop="name" content="Scraped Channel">
			</head><body></body></html>`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := &MetadataClient{BaseURL: server.URL}
	meta, err := c.Metadata(context.Background(), "abc12345678")
	require.NoError(t, err)
	assert.Equal(t, "Scraped Title", meta.Title)
	assert.Equal(t, "Scraped Channel", meta.AuthorName)
}
