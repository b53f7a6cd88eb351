// internal/clients/googlebooks.go
package clients

import (
	"context"
	"fmt"
	"net/url"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/lookup"
)

const (
	googleBooksURL    = "https://www.googleapis.com"
	googleBooksSource = "Google Books"
)

// GoogleBooksClient queries the Google Books volumes API.
type GoogleBooksClient struct {
	*httpClient
}

// NewGoogleBooksClient creates a client; an empty apiKey uses the anonymous
// quota. The key travels in the X-Goog-Api-Key header, never in the URL.
func NewGoogleBooksClient(apiKey string, opts ...Option) *GoogleBooksClient {
	c := newHTTPClient(googleBooksURL, opts)
	if apiKey != "" {
		c.header.Set("X-Goog-Api-Key", apiKey)
	}
	return &GoogleBooksClient{httpClient: c}
}

func (c *GoogleBooksClient) Name() string { return "googlebooks" }

type googleVolumes struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			PageCount     int      `json:"pageCount"`
			Description   string   `json:"description"`
			Language      string   `json:"language"`
			Categories    []string `json:"categories"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// LookupISBN returns the first volume matching isbn.
func (c *GoogleBooksClient) LookupISBN(ctx context.Context, isbn string) (*lookup.Record, error) {
	q := url.Values{}
	q.Set("q", "isbn:"+isbn)
	u := fmt.Sprintf("%s/books/v1/volumes?%s", c.baseURL, q.Encode())

	var res googleVolumes
	if err := c.getJSON(ctx, u, isbn, &res); err != nil {
		return nil, err
	}
	if res.TotalItems == 0 || len(res.Items) == 0 {
		return nil, apperr.NotFound("isbn", isbn)
	}

	info := res.Items[0].VolumeInfo
	rec := &lookup.Record{
		ISBN:            isbn,
		Title:           info.Title,
		Authors:         info.Authors,
		Publisher:       info.Publisher,
		PublicationDate: info.PublishedDate,
		Description:     info.Description,
		Language:        info.Language,
		Categories:      info.Categories,
		Thumbnail:       info.ImageLinks.Thumbnail,
		Source:          googleBooksSource,
	}
	if rec.Authors == nil {
		rec.Authors = []string{}
	}
	if rec.Categories == nil {
		rec.Categories = []string{}
	}
	if info.PageCount > 0 {
		pages := info.PageCount
		rec.PageCount = &pages
	}
	return rec, nil
}
