package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/repositories"
	"github.com/desertthunder/moviemaze/internal/services"
	"github.com/desertthunder/moviemaze/internal/shared"
	tu "github.com/desertthunder/moviemaze/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner wires a runner to in-memory slots and a mock catalog.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, *repositories.MemorySlotStore) {
	t.Helper()
	output := &bytes.Buffer{}
	slots := repositories.NewMemorySlotStore()
	catalog := tu.NewMockCatalog(
		models.Movie{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31", VoteAverage: 8.2, GenreIDs: []int{28}},
		models.Movie{ID: 949, Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 7.9},
	)

	runner := NewRunner(RunnerOpts{
		Logger:  shared.DiscardLogger(),
		Output:  output,
		Catalog: catalog,
		Slots:   slots,
	})
	if err := runner.openStores(); err != nil {
		t.Fatalf("openStores failed: %v", err)
	}
	runner.accounts.SetCost(4)
	return runner, output, slots
}

func run(r *Runner, args ...string) error {
	app := &cli.Command{Name: "moviemaze", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"moviemaze"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := tu.NewMockCatalog()
			api := &services.APIService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    catalog,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built for the catalog")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("configure loads the config file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[server]\nport = 4100\n"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := NewRunner(RunnerOpts{Logger: shared.DiscardLogger()})
			if err := runner.configure(path); err != nil {
				t.Fatalf("configure failed: %v", err)
			}
			if runner.config.Server.Port != 4100 {
				t.Errorf("expected port 4100, got %d", runner.config.Server.Port)
			}
			if runner.configPath != path {
				t.Errorf("expected configPath %s, got %s", path, runner.configPath)
			}
		})

		t.Run("catalog without credentials", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Catalog.APIKey = ""
			config.Catalog.ReadAccessToken = ""
			runner := NewRunner(RunnerOpts{Config: config, Logger: shared.DiscardLogger()})

			if _, err := runner.catalogService(); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("expected 'hello world', got %q", output.String())
		}

		failing := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := failing.writePlain("test"); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "account", "auth", "profile", "movies", "favorites", "theme", "storage", "api", "serve", "tui"} {
			if !names[want] {
				t.Errorf("expected %q command to be registered", want)
			}
		}
	})
}

func TestParseMovieID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr error
	}{
		{"603", 603, nil},
		{"", 0, shared.ErrMissingArgument},
		{"abc", 0, shared.ErrInvalidArgument},
		{"-4", 0, shared.ErrInvalidArgument},
		{"0", 0, shared.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseMovieID(tt.arg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseMovieID(%q) = %d, %v", tt.arg, got, err)
			}
		})
	}
}

func TestAuthCommands(t *testing.T) {
	t.Run("username login and logout", func(t *testing.T) {
		r, out, _ := newTestRunner(t)

		if err := run(r, "auth", "login", "--username", "neo"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if !strings.Contains(out.String(), "Welcome, neo") {
			t.Errorf("expected greeting, got %q", out.String())
		}

		out.Reset()
		if err := run(r, "auth", "whoami"); err != nil {
			t.Fatalf("whoami failed: %v", err)
		}
		if !strings.Contains(out.String(), "neo") {
			t.Errorf("whoami output = %q", out.String())
		}

		if err := run(r, "auth", "logout"); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if r.session.IsAuthenticated() {
			t.Error("expected no session after logout")
		}
	})

	t.Run("login requires credentials or username", func(t *testing.T) {
		r, _, _ := newTestRunner(t)
		if err := run(r, "auth", "login"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("register then password login", func(t *testing.T) {
		r, out, _ := newTestRunner(t)

		if err := run(r, "auth", "register", "--name", "Trinity", "--email", "trinity@zion.io", "--password", "follow"); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		user, ok := r.session.Current()
		if !ok || user.Name != "Trinity" || user.ProfileImage != nil {
			t.Fatalf("unexpected session after register: %+v", user)
		}

		if err := run(r, "auth", "login", "--email", "trinity@zion.io", "--password", "wrong"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}

		out.Reset()
		if err := run(r, "account", "list"); err != nil {
			t.Fatalf("account list failed: %v", err)
		}
		if !strings.Contains(out.String(), "trinity@zion.io") {
			t.Errorf("account list = %q", out.String())
		}
		if strings.Contains(out.String(), "$2a$") {
			t.Error("account list must not print password hashes")
		}
	})
}

func TestProfileCommands(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		r, _, _ := newTestRunner(t)
		if err := run(r, "profile", "update", "--name", "x"); !errors.Is(err, shared.ErrNoSession) {
			t.Errorf("expected ErrNoSession, got %v", err)
		}
	})

	t.Run("validates email", func(t *testing.T) {
		r, _, _ := newTestRunner(t)
		if err := run(r, "auth", "login", "--username", "neo"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if err := run(r, "profile", "update", "--name", "Neo", "--email", "not-an-email"); !errors.Is(err, shared.ErrInvalidProfile) {
			t.Errorf("expected ErrInvalidProfile, got %v", err)
		}

		if err := run(r, "profile", "update", "--name", "Neo", "--email", "neo@matrix.io"); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if got := r.session.DisplayName(); got != "Neo" {
			t.Errorf("DisplayName = %q", got)
		}
	})
}

func TestFavoritesCommands(t *testing.T) {
	r, out, _ := newTestRunner(t)

	if err := run(r, "favorites", "add", "603"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !r.favorites.IsFavorite(603) {
		t.Fatal("expected 603 to be a favorite")
	}

	out.Reset()
	if err := run(r, "favorites", "add", "603"); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Already in favorites") || r.favorites.Len() != 1 {
		t.Errorf("duplicate add should be a no-op, got %q", out.String())
	}

	if err := run(r, "favorites", "add", "777"); !errors.Is(err, shared.ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound, got %v", err)
	}

	out.Reset()
	if err := run(r, "favorites", "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "The Matrix") {
		t.Errorf("list output = %q", out.String())
	}

	t.Run("export", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "export")
		if err := run(r, "favorites", "export", "--output", dir, "--rate-limit", "1000"); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "favorites.json"))
		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
	})

	out.Reset()
	if err := run(r, "favorites", "remove", "603"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	out.Reset()
	if err := run(r, "favorites", "check", "603"); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out.String(), "not a favorite") {
		t.Errorf("check output = %q", out.String())
	}
}

func TestMoviesCommands(t *testing.T) {
	r, out, _ := newTestRunner(t)

	if err := run(r, "movies", "search", "matrix"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out.String(), "The Matrix (1999)") || !strings.Contains(out.String(), "Action") {
		t.Errorf("search output = %q", out.String())
	}

	if err := run(r, "movies", "search"); !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("expected ErrMissingArgument, got %v", err)
	}

	if err := run(r, "movies", "trending", "--window", "month"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}

	out.Reset()
	if err := run(r, "movies", "show", "949"); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Heat (1995)") {
		t.Errorf("show output = %q", out.String())
	}
}

func TestThemeAndStorageCommands(t *testing.T) {
	r, out, _ := newTestRunner(t)

	if err := run(r, "theme", "toggle"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "dark") {
		t.Errorf("toggle output = %q", out.String())
	}

	if err := run(r, "theme", "set", "sepia"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	out.Reset()
	if err := run(r, "storage", "list"); err != nil {
		t.Fatalf("storage list failed: %v", err)
	}
	if !strings.Contains(out.String(), models.SlotTheme) {
		t.Errorf("storage list = %q", out.String())
	}

	out.Reset()
	if err := run(r, "storage", "get", models.SlotTheme); err != nil {
		t.Fatalf("storage get failed: %v", err)
	}
	if !strings.Contains(out.String(), `"dark"`) {
		t.Errorf("storage get = %q", out.String())
	}
}
