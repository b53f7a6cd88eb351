// internal/clients/openlibrary.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/lookup"
)

const (
	openLibraryURL    = "https://openlibrary.org"
	openLibrarySource = "Open Library"
	maxCategories     = 5
)

// OpenLibraryClient queries the Open Library books API.
type OpenLibraryClient struct {
	*httpClient
}

func NewOpenLibraryClient(opts ...Option) *OpenLibraryClient {
	return &OpenLibraryClient{httpClient: newHTTPClient(openLibraryURL, opts)}
}

func (c *OpenLibraryClient) Name() string { return "openlibrary" }

// openLibraryBook matches one entry of api/books?jscmd=data.
type openLibraryBook struct {
	Title      string `json:"title"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate   string `json:"publish_date"`
	NumberOfPages int    `json:"number_of_pages"`
	Authors       []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Subjects []struct {
		Name string `json:"name"`
	} `json:"subjects"`
	Cover struct {
		Medium string `json:"medium"`
	} `json:"cover"`
	// Description is either a string or {"type": ..., "value": ...}.
	Description json.RawMessage `json:"description"`
}

// LookupISBN fetches the data record for isbn.
func (c *OpenLibraryClient) LookupISBN(ctx context.Context, isbn string) (*lookup.Record, error) {
	key := "ISBN:" + isbn
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data", c.baseURL, url.QueryEscape(key))

	var res map[string]openLibraryBook
	if err := c.getJSON(ctx, u, isbn, &res); err != nil {
		return nil, err
	}
	book, ok := res[key]
	if !ok {
		return nil, apperr.NotFound("isbn", isbn)
	}

	rec := &lookup.Record{
		ISBN:            isbn,
		Title:           book.Title,
		Authors:         []string{},
		PublicationDate: book.PublishDate,
		Description:     descriptionText(book.Description),
		Categories:      []string{},
		Thumbnail:       book.Cover.Medium,
		Source:          openLibrarySource,
	}
	for _, a := range book.Authors {
		rec.Authors = append(rec.Authors, a.Name)
	}
	publishers := make([]string, 0, len(book.Publishers))
	for _, p := range book.Publishers {
		publishers = append(publishers, p.Name)
	}
	rec.Publisher = strings.Join(publishers, ", ")
	for i, s := range book.Subjects {
		if i == maxCategories {
			break
		}
		rec.Categories = append(rec.Categories, s.Name)
	}
	if book.NumberOfPages > 0 {
		pages := book.NumberOfPages
		rec.PageCount = &pages
	}
	return rec, nil
}

func descriptionText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &typed); err == nil {
		return typed.Value
	}
	return ""
}
