// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// jsonFlag prints raw JSON instead of formatted text.
func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "status",
						Usage: "Show applied migrations without running them",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Write config.toml from the bundled template",
				Action: r.SetupConfig,
			},
		},
	}
}

// accountCommand manages the local account registry.
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage local accounts",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Password", Required: true},
				},
				Action: r.AccountSignup,
			},
			{
				Name:   "list",
				Usage:  "List registered accounts",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.AccountList,
			},
		},
	}
}

// authCommand handles the session lifecycle.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign in and out",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with an account, or as a bare username",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Account email"},
					&cli.StringFlag{Name: "password", Usage: "Account password"},
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Sign in as a username without an account"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Password", Required: true},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.AuthWhoami,
			},
		},
	}
}

// profileCommand edits the signed-in user's profile.
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and edit your profile",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the profile",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Name"},
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "username", Usage: "Username"},
					&cli.StringFlag{Name: "display-name", Usage: "Display name"},
					&cli.StringFlag{Name: "first-name", Usage: "First name"},
					&cli.StringFlag{Name: "full-name", Usage: "Full name"},
				},
				Action: r.ProfileUpdate,
			},
			{
				Name:  "image",
				Usage: "Set the profile image from a file or URL",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "source"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "clear", Usage: "Remove the profile image"},
				},
				Action: r.ProfileImage,
			},
		},
	}
}

// moviesCommand browses the catalog.
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "trending",
				Usage: "Show trending movies and a featured pick",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "window", Usage: "Trending window: day or week", Value: "week"},
					jsonFlag(),
				},
				Action: r.MoviesTrending,
			},
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "pages", Usage: "Number of result pages to fetch", Value: 1},
					jsonFlag(),
				},
				Action: r.MoviesSearch,
			},
			{
				Name:  "discover",
				Usage: "Discover movies by genre, year and rating",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "genre", Usage: "Genre id (see 'movies genres')"},
					&cli.IntFlag{Name: "year", Usage: "Primary release year"},
					&cli.FloatFlag{Name: "min-rating", Usage: "Minimum average vote"},
					&cli.IntFlag{Name: "page", Usage: "First page", Value: 1},
					&cli.IntFlag{Name: "pages", Usage: "Number of pages to fetch", Value: 1},
					jsonFlag(),
				},
				Action: r.MoviesDiscover,
			},
			{
				Name:  "show",
				Usage: "Show movie details",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.MoviesShow,
			},
			{
				Name:   "genres",
				Usage:  "List genres",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.MoviesGenres,
			},
			{
				Name:  "open",
				Usage: "Open a movie page in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "trailer", Usage: "Open the trailer instead"},
				},
				Action: r.MoviesOpen,
			},
		},
	}
}

// favoritesCommand manages the favorites list.
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite movies",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List favorites",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Add a movie to favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a movie from favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FavoritesRemove,
			},
			{
				Name:  "check",
				Usage: "Report whether a movie is a favorite",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FavoritesCheck,
			},
			{
				Name:  "export",
				Usage: "Export favorites with full details",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format: json, csv, markdown, txt", Value: "json"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory"},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent detail requests", Value: 4},
					&cli.FloatFlag{Name: "rate-limit", Usage: "Detail requests per second", Value: 10},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// themeCommand reads and changes the theme preference.
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Light or dark theme preference",
		Commands: []*cli.Command{
			{Name: "show", Usage: "Show the current theme", Action: r.ThemeShow},
			{Name: "toggle", Usage: "Switch between light and dark", Action: r.ThemeToggle},
			{
				Name:  "set",
				Usage: "Set the theme",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mode"},
				},
				Action: r.ThemeSet,
			},
		},
	}
}

// storageCommand inspects the raw storage slots.
func storageCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "storage",
		Usage: "Inspect stored slots",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List slots with revision and size",
				Action: r.StorageList,
			},
			{
				Name:  "get",
				Usage: "Print a slot value",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.StorageGet,
			},
		},
	}
}

// apiCommand handles direct catalog API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct catalog API calls",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the catalog API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// serveCommand runs the local HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the local JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Listen host (defaults to server.host)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (defaults to server.port)"},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing movies",
		Action:  r.TUI,
	}
}
