package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/crate/internal/shared"
)

// AlbumKind names albums in user-facing messages.
const AlbumKind = "album"

// Album is a catalogued release.
type Album struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year"`
	Cover  string `json:"cover,omitempty"`
}

var _ Entity[Album] = Album{}

// YearRange bounds album release years, inclusive on both ends.
type YearRange struct {
	Min int
	Max int
}

// Contains reports whether year falls inside r.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// NewAlbum validates caller input and returns an Album candidate with trimmed fields.
//
// The returned album carries no id; the collection manager assigns one on insert.
func NewAlbum(title, artist string, year int, cover string, years YearRange) (Album, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)

	var problems []string
	if title == "" {
		problems = append(problems, "title is required")
	}
	if artist == "" {
		problems = append(problems, "artist is required")
	}
	if !years.Contains(year) {
		problems = append(problems, fmt.Sprintf("year must be between %d and %d", years.Min, years.Max))
	}
	if len(problems) > 0 {
		return Album{}, fmt.Errorf("%w: %s", shared.ErrInvalidInput, strings.Join(problems, "; "))
	}

	return Album{Title: title, Artist: artist, Year: year, Cover: strings.TrimSpace(cover)}, nil
}

func (a Album) EntityID() int { return a.ID }

func (a Album) IdentityFields() (string, string) { return a.Title, a.Artist }

// WithID stamps id and, if no cover was given, a placeholder cover derived from it.
func (a Album) WithID(id int) Album {
	a.ID = id
	if a.Cover == "" {
		a.Cover = DefaultAlbumCover(id)
	}
	return a
}

// DefaultAlbumCover returns the placeholder cover URL for album id.
func DefaultAlbumCover(id int) string {
	return fmt.Sprintf("https://picsum.photos/seed/album-%d/300/300", id)
}

// String renders the album as `"Title" by Artist (Year)`.
func (a Album) String() string {
	return fmt.Sprintf("%q by %s (%d)", a.Title, a.Artist, a.Year)
}
