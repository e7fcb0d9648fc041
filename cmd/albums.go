package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/crate/internal/formatter"
	"github.com/desertthunder/crate/internal/services"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/urfave/cli/v3"
)

// AlbumsList prints the album collection as a table or JSON.
func (r *Runner) AlbumsList(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	albums := catalog.Albums(ctx)
	if cmd.Bool("json") {
		return r.writeJSON(albums, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Albums (%d)", len(albums)))
	for _, album := range albums {
		r.writePlain("%3d  %-32s %-24s %d\n", album.ID, album.Title, album.Artist, album.Year)
	}
	return nil
}

// AlbumsAdd appends one album to the collection.
//
// A duplicate title and artist is returned as an error so the process exits non-zero.
func (r *Runner) AlbumsAdd(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	result, err := catalog.AddAlbum(ctx, services.AlbumInput{
		Title:  cmd.String("title"),
		Artist: cmd.String("artist"),
		Year:   int(cmd.Int("year")),
		Cover:  cmd.String("cover"),
	})
	if err != nil {
		return fmt.Errorf("failed to add album: %w", err)
	}

	added := result.Items[len(result.Items)-1]
	r.logger.Info("album added", "id", added.ID, "title", added.Title, "persisted", result.Persisted)
	r.writePlain("✓ Added %s\n", added)
	r.writePersisted(result.Persisted)
	return nil
}

// AlbumsReset restores the seed album collection.
func (r *Runner) AlbumsReset(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	result := catalog.ResetAlbums(ctx)
	r.writePlain("✓ Album collection reset (%d albums)\n", len(result.Items))
	r.writePersisted(result.Persisted)
	return nil
}

// AlbumsExport writes the album collection to a file in the requested format.
func (r *Runner) AlbumsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}

	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(format, r.config.Collections.AlbumsKey, catalog.Albums(ctx), cmd.String("output"))
	if err != nil {
		return fmt.Errorf("failed to export albums: %w", err)
	}

	r.logger.Info("albums exported", "format", format, "path", path)
	r.writePlain("✓ Exported albums to %s\n", path)
	return nil
}
