package thumbnails

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/application/ports"
	pkgerrors "opencut-backend/pkg/errors"
)

func TestClientSatisfiesThumbnailProviderPort(t *testing.T) {
	var provider ports.ThumbnailProvider = NewClient("http://thumbnails.local", nil)
	assert.NotNil(t, provider)
}

func TestThumbnailURLResolvesFrame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/thumbnails", r.URL.Path)
		assert.Equal(t, "media-1", r.URL.Query().Get("media_id"))
		assert.Equal(t, "2.5", r.URL.Query().Get("time"))
		fmt.Fprint(w, `{"url":"https://cdn.example.com/media-1/2.5.jpg"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	url, err := client.ThumbnailURL(context.Background(), "media-1", 2.5)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media-1/2.5.jpg", url)
}

func TestThumbnailURLValidatesInput(t *testing.T) {
	client := NewClient("http://localhost:0", nil)

	_, err := client.ThumbnailURL(context.Background(), "", 0)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = client.ThumbnailURL(context.Background(), "media-1", -1)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestThumbnailURLUnknownMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.ThumbnailURL(context.Background(), "missing", 0)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestThumbnailURLBreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	for i := 0; i < 10; i++ {
		_, err := client.ThumbnailURL(context.Background(), "media-1", 0)
		require.Error(t, err)
	}

	// The breaker is open now; requests fail without reaching the server.
	_, err := client.ThumbnailURL(context.Background(), "media-1", 0)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInternal(err))
}
