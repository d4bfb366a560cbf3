package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("id"))
		assert.Equal(t, "test_key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [{
				"id": "dQw4w9WgXcQ",
				"snippet": {
					"title": "Go Concurrency",
					"description": "Goroutines and channels",
					"channelTitle": "Gopher TV",
					"publishedAt": "2024-01-02T03:04:05Z",
					"thumbnails": {
						"default": {"url": "https://i.ytimg.com/default.jpg"},
						"high": {"url": "https://i.ytimg.com/high.jpg"}
					}
				}
			}]
		}`)
	}))
	defer server.Close()

	c := NewMetadataClient(server.URL+"/", "test_key", server.Client())
	meta, err := c.FetchMetadata(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", meta.VideoID)
	assert.Equal(t, "Go Concurrency", meta.Title)
	assert.Equal(t, "Goroutines and channels", meta.Description)
	assert.Equal(t, "Gopher TV", meta.ChannelTitle)
	assert.Equal(t, "2024-01-02T03:04:05Z", meta.PublishedAt)
	assert.Equal(t, "https://i.ytimg.com/high.jpg", meta.Thumbnail)
}

func TestFetchMetadataNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer server.Close()

	c := NewMetadataClient(server.URL, "test_key", nil)
	_, err := c.FetchMetadata(context.Background(), "aaaaaaaaaaa")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, ReasonVideoNotFound, errors.Reason(err))
}

func TestFetchMetadataAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "API key not valid"}}`)
	}))
	defer server.Close()

	c := NewMetadataClient(server.URL, "bad", nil)
	_, err := c.FetchMetadata(context.Background(), "aaaaaaaaaaa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.False(t, errors.IsNotFound(err))
}
