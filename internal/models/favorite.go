package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/crate/internal/shared"
)

// FavoriteKind names recipe favorites in user-facing messages.
const FavoriteKind = "recipe"

// MaxReadyInMinutes caps the preparation time of a favorite at one day.
const MaxReadyInMinutes = 24 * 60

// Favorite is a saved recipe.
type Favorite struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Source         string `json:"source"`
	ReadyInMinutes int    `json:"ready_in_minutes"`
	Image          string `json:"image,omitempty"`
}

var _ Entity[Favorite] = Favorite{}

// NewFavorite validates caller input and returns a Favorite candidate.
func NewFavorite(title, source string, minutes int, image string) (Favorite, error) {
	title = strings.TrimSpace(title)
	source = strings.TrimSpace(source)

	var problems []string
	if title == "" {
		problems = append(problems, "title is required")
	}
	if source == "" {
		problems = append(problems, "source is required")
	}
	if minutes < 1 || minutes > MaxReadyInMinutes {
		problems = append(problems, fmt.Sprintf("ready time must be between 1 and %d minutes", MaxReadyInMinutes))
	}
	if len(problems) > 0 {
		return Favorite{}, fmt.Errorf("%w: %s", shared.ErrInvalidInput, strings.Join(problems, "; "))
	}

	return Favorite{Title: title, Source: source, ReadyInMinutes: minutes, Image: strings.TrimSpace(image)}, nil
}

func (f Favorite) EntityID() int { return f.ID }

func (f Favorite) IdentityFields() (string, string) { return f.Title, f.Source }

// WithID stamps id and a placeholder image when none was given.
func (f Favorite) WithID(id int) Favorite {
	f.ID = id
	if f.Image == "" {
		f.Image = fmt.Sprintf("https://picsum.photos/seed/recipe-%d/312/231", id)
	}
	return f
}
