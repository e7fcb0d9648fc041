package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/crate/internal/services"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the recipe favorites as a table or JSON.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	favorites := catalog.Favorites(ctx)
	if cmd.Bool("json") {
		return r.writeJSON(favorites, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(favorites)))
	for _, fav := range favorites {
		r.writePlain("%3d  %-32s %-24s %d min\n", fav.ID, fav.Title, fav.Source, fav.ReadyInMinutes)
	}
	return nil
}

// FavoritesAdd appends one recipe to the favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	result, err := catalog.AddFavorite(ctx, services.FavoriteInput{
		Title:          cmd.String("title"),
		Source:         cmd.String("source"),
		ReadyInMinutes: int(cmd.Int("minutes")),
		Image:          cmd.String("image"),
	})
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	added := result.Items[len(result.Items)-1]
	r.logger.Info("favorite added", "id", added.ID, "title", added.Title, "persisted", result.Persisted)
	r.writePlain("✓ Added %q from %s\n", added.Title, added.Source)
	r.writePersisted(result.Persisted)
	return nil
}

// FavoritesReset restores the seed favorites.
func (r *Runner) FavoritesReset(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	result := catalog.ResetFavorites(ctx)
	r.writePlain("✓ Favorites reset (%d recipes)\n", len(result.Items))
	r.writePersisted(result.Persisted)
	return nil
}
