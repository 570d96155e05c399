package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelf/internal/domain"
)

func TestSearchSendsQueryAndDecodesPage(t *testing.T) {
	var gotPath, gotQ, gotLimit, gotSkip, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotSkip = r.URL.Query().Get("skip")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":31,"title":"iPhone 9","price":549,"rating":4.69,"stock":94,"brand":"Apple","category":"smartphones"}],"total":65,"skip":30,"limit":30}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL+"/", WithUserAgent("shelf/test"))
	require.NoError(t, err)

	page, err := c.Search(context.Background(), Query{Text: "phone case", Limit: 30, Offset: 30})
	require.NoError(t, err)

	assert.Equal(t, "/products/search", gotPath)
	assert.Equal(t, "phone case", gotQ)
	assert.Equal(t, "30", gotLimit)
	assert.Equal(t, "30", gotSkip)
	assert.Equal(t, "shelf/test", gotUA)

	require.Len(t, page.Items, 1)
	assert.Equal(t, 65, page.Total)
	assert.Equal(t, domain.Product{
		ID: 31, Title: "iPhone 9", Price: 549, Rating: 4.69, Stock: 94, Brand: "Apple", Category: "smartphones",
	}, page.Items[0])
}

func TestSearchEmptyQueryStillSendsParam(t *testing.T) {
	var raw string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		w.Write([]byte(`{"products":[],"total":0}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	page, err := c.Search(context.Background(), Query{Limit: 30})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Contains(t, raw, "q=")
	assert.Contains(t, raw, "skip=0")
}

func TestSearchMapsStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "json message", status: http.StatusNotFound, body: `{"message":"Product search unavailable"}`, wantMsg: "Product search unavailable"},
		{name: "plain body", status: http.StatusBadGateway, body: `bad gateway`, wantMsg: "unexpected status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			require.NoError(t, err)

			_, err = c.Search(context.Background(), Query{Text: "x", Limit: 30})
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, domain.KindHTTP, domain.ErrorKind(err))
		})
	}
}

func TestSearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": [`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), Query{Limit: 30})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode products")
}

func TestSearchCanceledContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := NewClient(server.URL, WithTimeout(5*time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = c.Search(ctx, Query{Text: "slow", Limit: 30})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, domain.KindCanceled, domain.ErrorKind(err))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	assert.Error(t, err)

	c, err := NewClient("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL.String())
}
