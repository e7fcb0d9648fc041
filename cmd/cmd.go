// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// setupCommand handles setup operations for the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the SQLite database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "print",
						Usage: "Print the template instead of writing it",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// albumsCommand handles album collection operations
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "albums",
		Aliases: []string{"album", "a"},
		Usage:   "Manage the album collection",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List albums",
				Flags:   listFlags(),
				Action:  r.AlbumsList,
			},
			{
				Name:  "add",
				Usage: "Add an album; duplicates by title and artist are rejected",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Album title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Aliases:  []string{"a"},
						Usage:    "Album artist",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "year",
						Aliases:  []string{"y"},
						Usage:    "Release year",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Cover image URL (defaults to a placeholder)",
					},
				},
				Action: r.AlbumsAdd,
			},
			{
				Name:   "reset",
				Usage:  "Restore the built-in album collection",
				Action: r.AlbumsReset,
			},
			{
				Name:  "export",
				Usage: "Export albums to CSV, Markdown or plain text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown or text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: <collection key>.<ext>)",
					},
				},
				Action: r.AlbumsExport,
			},
		},
	}
}

// favoritesCommand handles recipe favorite operations
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav", "f"},
		Usage:   "Manage recipe favorites",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List favorite recipes",
				Flags:   listFlags(),
				Action:  r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Add a favorite; duplicates by title and source are rejected",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Recipe title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Recipe source (site or author)",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "minutes",
						Aliases:  []string{"m"},
						Usage:    "Ready in minutes",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Image URL (defaults to a placeholder)",
					},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:   "reset",
				Usage:  "Restore the built-in favorites",
				Action: r.FavoritesReset,
			},
		},
	}
}

// serveCommand starts the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the collections over a JSON HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Address to bind (default from config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive album management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for the album collection",
		Action:  r.TUI,
	}
}
