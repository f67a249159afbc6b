package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/accounts"
	"github.com/desertthunder/moviemaze/internal/favorites"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/repositories"
	"github.com/desertthunder/moviemaze/internal/services"
	"github.com/desertthunder/moviemaze/internal/session"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/desertthunder/moviemaze/internal/tasks"
	"github.com/desertthunder/moviemaze/internal/theme"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Storage and the catalog client are opened on first use so commands that need neither (setup config) work
// without a database or credentials.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.MovieEngine

	db        *sql.DB
	slots     models.SlotStore
	cache     *repositories.MovieCacheRepository
	session   *session.Store
	favorites *favorites.Store
	theme     *theme.Store
	accounts  *accounts.Registry
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Slots      models.SlotStore // Overrides the SQLite slot table, mainly for tests
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		slots:      opts.Slots,
	}
	if r.catalog != nil {
		r.engine = tasks.NewMovieEngine(r.catalog)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, accountCommand, authCommand, profileCommand, moviesCommand, favoritesCommand,
		themeCommand, storageCommand, cacheCommand, apiCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config file at path (when present) and applies the log level.
func (r *Runner) configure(path string) error {
	config, err := shared.LoadConfigOrDefault(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	r.config = config
	r.configPath = path
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Log.Level))
	return nil
}

// SetLogger replaces the logger, e.g. to keep log output away from the TUI.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// openStores opens the slot storage and builds the session, favorites, theme and account stores once.
func (r *Runner) openStores() error {
	if r.session != nil {
		return nil
	}

	if r.slots == nil {
		db, err := shared.OpenStorage(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		r.db = db
		r.slots = repositories.NewSlotRepository(db)
		r.cache = repositories.NewMovieCacheRepository(db, r.config.Catalog.CacheTTL.Duration)
	}

	sess, err := session.Open(r.slots, session.WithLogger(r.logger))
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	r.session = sess
	r.favorites = favorites.Open(r.slots, r.logger)
	r.theme = theme.Open(r.slots, r.logger)
	r.accounts = accounts.NewRegistry(r.slots, r.logger)
	return nil
}

// catalogService returns the configured catalog client, building the TMDB client on first use.
func (r *Runner) catalogService() (services.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	opts := []services.TMDBOption{services.WithHTTPClient(r.httpClient), services.WithLogger(r.logger)}
	if r.cache != nil {
		opts = append(opts, services.WithMovieCache(r.cache))
	}

	tmdb, err := services.NewTMDBService(r.config.Catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: set catalog.api_key or catalog.read_access_token in %s", err, r.configPath)
	}
	r.catalog = tmdb
	r.engine = tasks.NewMovieEngine(tmdb)
	return tmdb, nil
}

// apiService returns the raw catalog client used by `api get`.
func (r *Runner) apiService() *services.APIService {
	if r.api == nil {
		r.api = services.NewAPIService(r.config.Catalog.BaseURL, r.httpClient).WithAPIKey(r.config.Catalog.APIKey)
	}
	return r.api
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// requireSession returns the signed-in user or [shared.ErrNoSession].
func (r *Runner) requireSession() (models.UserRecord, error) {
	if err := r.openStores(); err != nil {
		return models.UserRecord{}, err
	}
	user, ok := r.session.Current()
	if !ok {
		return models.UserRecord{}, fmt.Errorf("%w: run 'moviemaze auth login' first", shared.ErrNoSession)
	}
	return user, nil
}

// isNotFound reports whether err means a lookup found nothing.
func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrSlotNotFound) || errors.Is(err, shared.ErrMovieNotFound)
}
