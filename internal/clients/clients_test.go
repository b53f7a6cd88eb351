// internal/clients/clients_test.go
package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/lookup"
)

var (
	_ lookup.Provider = (*OpenLibraryClient)(nil)
	_ lookup.Provider = (*GoogleBooksClient)(nil)
)

func TestOpenLibraryHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "ISBN:9782070612758", r.URL.Query().Get("bibkeys"))
		assert.Equal(t, "data", r.URL.Query().Get("jscmd"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ISBN:9782070612758": {
			"title": "Le Petit Prince",
			"authors": [{"name": "Antoine de Saint-Exupéry"}],
			"publishers": [{"name": "Gallimard"}, {"name": "Folio"}],
			"publish_date": "2007",
			"number_of_pages": 96,
			"subjects": [{"name":"a"},{"name":"b"},{"name":"c"},{"name":"d"},{"name":"e"},{"name":"f"}],
			"cover": {"medium": "https://covers.example/m.jpg"},
			"description": {"type": "/type/text", "value": "Un conte."}
		}}`))
	}))
	defer srv.Close()

	rec, err := NewOpenLibraryClient(WithBaseURL(srv.URL), WithRate(100)).LookupISBN(context.Background(), "9782070612758")
	require.NoError(t, err)
	assert.Equal(t, "Le Petit Prince", rec.Title)
	assert.Equal(t, []string{"Antoine de Saint-Exupéry"}, rec.Authors)
	assert.Equal(t, "Gallimard, Folio", rec.Publisher)
	assert.Equal(t, 96, *rec.PageCount)
	assert.Len(t, rec.Categories, 5)
	assert.Equal(t, "Un conte.", rec.Description)
	assert.Equal(t, "Open Library", rec.Source)
}

func TestOpenLibraryMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewOpenLibraryClient(WithBaseURL(srv.URL)).LookupISBN(context.Background(), "9782070612758")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOpenLibraryStringDescription(t *testing.T) {
	assert.Equal(t, "plain", descriptionText([]byte(`"plain"`)))
	assert.Equal(t, "", descriptionText(nil))
	assert.Equal(t, "", descriptionText([]byte(`42`)))
}

func TestGoogleBooksHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books/v1/volumes", r.URL.Path)
		assert.Equal(t, "isbn:9780441172719", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.Header.Get("X-Goog-Api-Key"))
		assert.False(t, r.URL.Query().Has("key"))
		w.Write([]byte(`{"totalItems": 1, "items": [{"volumeInfo": {
			"title": "Dune", "authors": ["Frank Herbert"], "publisher": "Ace",
			"publishedDate": "1990", "pageCount": 535, "language": "en",
			"categories": ["Fiction"], "imageLinks": {"thumbnail": "http://t"}
		}}]}`))
	}))
	defer srv.Close()

	rec, err := NewGoogleBooksClient("secret", WithBaseURL(srv.URL)).LookupISBN(context.Background(), "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, "Dune", rec.Title)
	assert.Equal(t, "en", rec.Language)
	assert.Equal(t, 535, *rec.PageCount)
	assert.Equal(t, "Google Books", rec.Source)
}

func TestGoogleBooksWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-Goog-Api-Key"))
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer srv.Close()

	_, err := NewGoogleBooksClient("", WithBaseURL(srv.URL)).LookupISBN(context.Background(), "9780441172719")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpstreamFailuresAreUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }},
		{"garbage", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`<html>`)) }},
		{"slow", func(w http.ResponseWriter, r *http.Request) { time.Sleep(200 * time.Millisecond) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewGoogleBooksClient("", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
			_, err := c.LookupISBN(context.Background(), "9780441172719")
			assert.ErrorIs(t, err, apperr.ErrUnavailable)
			assert.NotErrorIs(t, err, apperr.ErrNotFound)
		})
	}
}

func TestUpstreamNotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOpenLibraryClient(WithBaseURL(srv.URL)).LookupISBN(context.Background(), "9782070612758")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := NewOpenLibraryClient(WithBaseURL(base)).LookupISBN(context.Background(), "9782070612758")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
}

func TestUnreachableUpstreamHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := NewGoogleBooksClient("SUPER-SECRET-KEY", WithBaseURL(base)).LookupISBN(context.Background(), "9780261103573")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.NotContains(t, err.Error(), "SUPER-SECRET-KEY")
	assert.NotContains(t, err.Error(), "key=")
	assert.Contains(t, err.Error(), "/books/v1/volumes")
}

func TestRedactURLKeepsCause(t *testing.T) {
	u, err := url.Parse("https://example.test/books/v1/volumes?key=s3cret&q=isbn:1")
	require.NoError(t, err)
	cause := errors.New("connection refused")

	got := redactURL(&url.Error{Op: "Get", URL: u.String(), Err: cause}, u)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, "Get example.test/books/v1/volumes: connection refused", got.Error())

	plain := errors.New("other")
	assert.Same(t, plain, redactURL(plain, u))
}
