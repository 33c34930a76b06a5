package movies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMovie_RatingValue(t *testing.T) {
	require.InDelta(t, 8.4, Movie{Rating: "8.4"}.RatingValue(), 1e-9)
	require.InDelta(t, 7.0, Movie{Rating: " 7 "}.RatingValue(), 1e-9)
	require.Zero(t, Movie{Rating: ""}.RatingValue())
	require.Zero(t, Movie{Rating: "n/a"}.RatingValue())
}

func TestMovie_ResizedImageURL(t *testing.T) {
	m := Movie{ImageURL: "https://m.media-amazon.com/images/M/abc._V1_Ratio0.6716_AL_.jpg"}
	require.Equal(t, "https://m.media-amazon.com/images/M/abc._V0_UX600_.jpg", m.ResizedImageURL())

	plain := Movie{ImageURL: "https://example.com/poster.jpg"}
	require.Equal(t, plain.ImageURL, plain.ResizedImageURL())
}

func TestClient_LoadMostPopular_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":"tt1","title":"Old","fullTitle":"Old (2021)","imDbRating":"5.8","image":"https://x/y._V1_.jpg"}],"errorMessage":""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	items, err := c.LoadMostPopular(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "tt1", items[0].ID)
	require.Equal(t, "Old (2021)", items[0].FullTitle)
	require.InDelta(t, 5.8, items[0].RatingValue(), 1e-9)
}

func TestClient_LoadMostPopular_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[],"errorMessage":"Invalid API Key"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).LoadMostPopular(context.Background())
	require.EqualError(t, err, "Invalid API Key")
}

func TestClient_LoadMostPopular_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).LoadMostPopular(context.Background())
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestClient_LoadMostPopular_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).LoadMostPopular(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP 502")
}

func TestClient_LoadMostPopular_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{bad json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).LoadMostPopular(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode movies")
}

func TestClient_FetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())

	data, err := c.FetchImage(context.Background(), srv.URL+"/poster.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, data)

	_, err = c.FetchImage(context.Background(), srv.URL+"/missing.jpg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP 404")
}
