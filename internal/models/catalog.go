package models

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/flick/internal/shared"
)

//go:embed catalog.json
var catalogData []byte

// CatalogEntry is static discovery metadata. Only the title and poster are ever sent to the service.
type CatalogEntry struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
}

// Catalog is the immutable list of discoverable movies.
type Catalog []CatalogEntry

// LoadCatalog decodes the embedded catalog.
func LoadCatalog() Catalog {
	var c Catalog
	if err := json.Unmarshal(catalogData, &c); err != nil {
		panic(fmt.Sprintf("failed to parse embedded catalog: %v", err))
	}
	return c
}

// Find returns the entry with the given id.
func (c Catalog) Find(id int) (CatalogEntry, error) {
	for _, e := range c {
		if e.ID == id {
			return e, nil
		}
	}
	return CatalogEntry{}, fmt.Errorf("%w: id %d", shared.ErrCatalogEntryNotFound, id)
}

// Filter returns entries tagged with genre (case-insensitive) and released in year.
// A blank genre or zero year matches every entry.
func (c Catalog) Filter(genre string, year int) Catalog {
	genre = strings.TrimSpace(genre)
	out := make(Catalog, 0, len(c))
	for _, e := range c {
		if year != 0 && e.Year != year {
			continue
		}
		if genre != "" && !e.HasGenre(genre) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// HasGenre reports whether the entry is tagged with genre.
func (e CatalogEntry) HasGenre(genre string) bool {
	for _, g := range e.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// NewMovie builds the create body used when adding an entry from discovery.
func (e CatalogEntry) NewMovie(status Status, rating *int, review *string) NewMovie {
	return NewMovie{
		Title:    e.Title,
		Status:   status,
		Rating:   rating,
		Review:   review,
		ImageURL: OptionalText(e.ImageURL),
	}
}
