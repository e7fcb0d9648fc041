package services

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crate/internal/collection"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/desertthunder/crate/internal/store"
)

// AlbumInput is the caller-supplied part of an album; the id is always assigned by the catalog.
type AlbumInput struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year"`
	Cover  string `json:"cover,omitempty"`
}

// FavoriteInput is the caller-supplied part of a recipe favorite.
type FavoriteInput struct {
	Title          string `json:"title"`
	Source         string `json:"source"`
	ReadyInMinutes int    `json:"ready_in_minutes"`
	Image          string `json:"image,omitempty"`
}

// Catalog groups the managed collections behind one store.
type Catalog struct {
	albums    *collection.Manager[models.Album]
	favorites *collection.Manager[models.Favorite]
	years     models.YearRange
	store     store.Store
}

// NewCatalog builds album and favorite managers over s using the keys in keys.
func NewCatalog(s store.Store, keys shared.CollectionsConfig, albums shared.AlbumsConfig, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	albumAdapter := store.NewAdapter(s, keys.AlbumsKey, logger)
	favoriteAdapter := store.NewAdapter(s, keys.FavoritesKey, logger)

	return &Catalog{
		albums:    collection.New(albumAdapter, models.AlbumKind, models.SeedAlbums(), logger),
		favorites: collection.New(favoriteAdapter, models.FavoriteKind, models.SeedFavorites(), logger),
		years:     models.YearRange{Min: albums.MinYear, Max: albums.MaxYear},
		store:     s,
	}
}

// Years returns the accepted album release years.
func (c *Catalog) Years() models.YearRange { return c.years }

// Driver names the backend the catalog persists to.
func (c *Catalog) Driver() store.Driver { return c.store.Driver() }

// Close releases the underlying store.
func (c *Catalog) Close() error { return c.store.Close() }

// Albums returns the current album collection.
func (c *Catalog) Albums(ctx context.Context) []models.Album {
	return c.albums.Load(ctx)
}

// AddAlbum validates in and appends it to the persisted album collection.
func (c *Catalog) AddAlbum(ctx context.Context, in AlbumInput) (collection.Result[models.Album], error) {
	album, err := models.NewAlbum(in.Title, in.Artist, in.Year, in.Cover, c.years)
	if err != nil {
		return collection.Result[models.Album]{}, err
	}
	return c.albums.Append(ctx, album)
}

// ResetAlbums restores the album seed.
func (c *Catalog) ResetAlbums(ctx context.Context) collection.Result[models.Album] {
	return c.albums.Reset(ctx)
}

// Favorites returns the current recipe favorites.
func (c *Catalog) Favorites(ctx context.Context) []models.Favorite {
	return c.favorites.Load(ctx)
}

// AddFavorite validates in and appends it to the persisted favorites.
func (c *Catalog) AddFavorite(ctx context.Context, in FavoriteInput) (collection.Result[models.Favorite], error) {
	fav, err := models.NewFavorite(in.Title, in.Source, in.ReadyInMinutes, in.Image)
	if err != nil {
		return collection.Result[models.Favorite]{}, err
	}
	return c.favorites.Append(ctx, fav)
}

// ResetFavorites restores the favorites seed.
func (c *Catalog) ResetFavorites(ctx context.Context) collection.Result[models.Favorite] {
	return c.favorites.Reset(ctx)
}
