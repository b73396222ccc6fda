// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand creates the config file and the local session database.
func setupCommand(r *Runner) *cli.Command {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the session database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   configPath,
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the session lifecycle
func authCommand(r *Runner) *cli.Command {
	credentials := []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "Account username (prompted when omitted)",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Account password (prompted when omitted)",
		},
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Log in, register and manage the stored session",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Log in and store the session token",
				Flags:  credentials,
				Action: r.AuthLogin,
			},
			{
				Name:   "register",
				Usage:  "Create a new account",
				Flags:  credentials,
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session",
				Action: r.AuthStatus,
			},
		},
	}
}

// catalogCommand handles discovery of the built-in catalog
func catalogCommand(r *Runner) *cli.Command {
	reviewFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "rating",
			Usage: "Rating from 1 to 5",
		},
		&cli.StringFlag{
			Name:  "review",
			Usage: "Review text",
		},
	}

	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"discover"},
		Usage:   "Browse the catalog and add entries to your list",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog entries with their global ratings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Only entries tagged with this genre",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Only entries released in this year",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogList,
			},
			{
				Name:      "add",
				Usage:     "Add a catalog entry to your list as plan to watch",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.CatalogAdd,
			},
			{
				Name:      "watched",
				Usage:     "Add a catalog entry to your list as watched",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     reviewFlags,
				Action:    r.CatalogWatched,
			},
			{
				Name:  "add-all",
				Usage: "Add every matching catalog entry that is not on your list yet",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Only entries tagged with this genre",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Only entries released in this year",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent requests (default from config)",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second (default from config)",
					},
				},
				Action: r.CatalogAddAll,
			},
		},
	}
}

// moviesCommand handles the signed-in user's list
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"my"},
		Usage:   "Manage your movie list",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Show your list",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Filter by status (all, plan, watched)",
						Value:   "all",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Match title, status or review",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:  "add",
				Usage: "Add a movie (prompted when --title is omitted)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Movie title"},
					&cli.StringFlag{Name: "status", Usage: "plan or watched", Value: "plan"},
					&cli.StringFlag{Name: "rating", Usage: "Rating from 1 to 5, required when watched"},
					&cli.StringFlag{Name: "review", Usage: "Review text"},
					&cli.StringFlag{Name: "image", Usage: "Poster URL"},
				},
				Action: r.MoviesAdd,
			},
			{
				Name:  "status",
				Usage: "Change the status of a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "status"},
				},
				Action: r.MoviesStatus,
			},
			{
				Name:      "review",
				Usage:     "Rate and review a movie, marking it watched",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "rating", Usage: "Rating from 1 to 5"},
					&cli.StringFlag{Name: "review", Usage: "Review text"},
				},
				Action: r.MoviesReview,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a movie from your list",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.MoviesDelete,
			},
			{
				Name:  "export",
				Usage: "Export your list to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "csv, markdown, txt or json",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, - for stdout (default: {username}_movies.{ext})",
					},
				},
				Action: r.MoviesExport,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	requestFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "auth",
			Usage: "Send the stored session token",
		},
		&cli.StringSliceFlag{
			Name:    "header",
			Aliases: []string{"H"},
			Usage:   "Extra header as 'Key: Value' (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "curl",
			Usage: "Print the equivalent cURL command instead of sending",
		},
	}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the movie list service",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				}, requestFlags...),
				Action: r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				}, requestFlags...),
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}
