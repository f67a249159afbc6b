package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/favorites"
	"github.com/desertthunder/moviemaze/internal/formatter"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/services"
	"github.com/desertthunder/moviemaze/internal/session"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/desertthunder/moviemaze/internal/tasks"
	"github.com/desertthunder/moviemaze/internal/theme"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	FavoritesView
	DetailsView
)

// Deps groups the stores and services the TUI works with.
type Deps struct {
	Catalog      services.Catalog
	Engine       *tasks.MovieEngine
	Session      *session.Store
	Favorites    *favorites.Store
	Theme        *theme.Store
	Logger       *log.Logger
	ImageBaseURL string
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	deps       Deps
	view       ViewState
	returnTo   ViewState
	width      int
	height     int
	browseList list.Model
	favList    list.Model
	movies     []models.Movie
	featured   *models.Movie
	lastPage   int
	hasMore    bool
	loading    bool
	genres     formatter.GenreIndex
	details    *models.MovieDetails
	status     string
	err        error
	palette    *Palette
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = shared.DiscardLogger()
	}
	if deps.Engine == nil {
		deps.Engine = tasks.NewMovieEngine(deps.Catalog)
	}

	m := &Model{
		ctx:        ctx,
		deps:       deps,
		view:       BrowseView,
		browseList: newList("Trending"),
		favList:    newList("Favorites"),
		genres:     formatter.GenreIndex{},
		palette:    paletteFor(deps.Theme.Mode()),
		help:       help.New(),
		keys:       newKeyMap(),
		loading:    true,
	}
	m.refreshFavorites()
	return m
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// Init initializes the TUI by loading the home screen and genre names.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadHome(), m.fetchGenres())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.browseList.SetSize(msg.Width-4, msg.Height-8)
		m.favList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgHomeLoaded:
		data := msg.data.(homeLoaded)
		m.loading = false
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.featured = data.home.Featured
		m.movies = append(append([]models.Movie{}, data.home.Trending...), data.home.Discover.Results...)
		m.movies = dedupe(m.movies)
		m.lastPage = data.home.Discover.Page
		m.hasMore = data.home.Discover.HasMore()
		m.refreshBrowse()

	case MsgGenresFetched:
		data := msg.data.(genresFetched)
		if data.err != nil {
			m.deps.Logger.Warn("failed to fetch genres", "error", data.err)
			return m, nil
		}
		m.genres = formatter.NewGenreIndex(data.genres)
		m.refreshBrowse()
		m.refreshFavorites()

	case MsgMoreLoaded:
		data := msg.data.(moreLoaded)
		m.loading = false
		if data.result != nil {
			m.movies = data.result.Movies
			m.lastPage = data.result.LastPage
			m.hasMore = data.result.HasMore
			m.refreshBrowse()
		}
		if data.err != nil {
			m.status = m.palette.err.Render(fmt.Sprintf("Failed to load more: %v", data.err))
		}

	case MsgDetailsFetched:
		data := msg.data.(detailsFetched)
		m.loading = false
		if data.err != nil {
			m.status = m.palette.err.Render(fmt.Sprintf("Failed to load details: %v", data.err))
			return m, nil
		}
		m.details = data.details
		m.returnTo = m.view
		m.view = DetailsView

	case MsgFavoriteToggled:
		data := msg.data.(favoriteToggled)
		if data.err != nil {
			m.status = m.palette.err.Render(fmt.Sprintf("Failed to update favorites: %v", data.err))
			return m, nil
		}
		if data.favorite {
			m.status = m.palette.ok.Render("Added to favorites: " + data.movie.Title)
		} else {
			m.status = m.palette.warn.Render("Removed from favorites: " + data.movie.Title)
		}
		m.refreshBrowse()
		m.refreshFavorites()

	case MsgThemeToggled:
		data := msg.data.(themeToggled)
		if data.err != nil {
			m.status = m.palette.err.Render(fmt.Sprintf("Failed to save theme: %v", data.err))
			return m, nil
		}
		m.palette = paletteFor(data.mode)
		m.status = m.palette.help.Render(fmt.Sprintf("Theme: %s", data.mode))
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering() {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.theme):
		return m, m.toggleTheme()
	}

	if m.view == DetailsView {
		switch {
		case key.Matches(msg, m.keys.back):
			m.view = m.returnTo
			m.details = nil
		case key.Matches(msg, m.keys.favorite):
			if m.details != nil {
				return m, m.toggleFavorite(m.details.Movie)
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.tab):
		if m.view == BrowseView {
			m.view = FavoritesView
		} else {
			m.view = BrowseView
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if movie, ok := m.selected(); ok {
			m.loading = true
			return m, m.fetchDetails(movie.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if movie, ok := m.selected(); ok {
			return m, m.toggleFavorite(movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.more):
		if m.view == BrowseView && m.hasMore && !m.loading {
			m.loading = true
			return m, m.loadMore()
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.status = ""
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) filtering() bool {
	switch m.view {
	case BrowseView:
		return m.browseList.FilterState() == list.Filtering
	case FavoritesView:
		return m.favList.FilterState() == list.Filtering
	}
	return false
}

func (m *Model) selected() (models.Movie, bool) {
	var item list.Item
	switch m.view {
	case BrowseView:
		item = m.browseList.SelectedItem()
	case FavoritesView:
		item = m.favList.SelectedItem()
	}
	if mi, ok := item.(movieItem); ok {
		return mi.movie, true
	}
	return models.Movie{}, false
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		m.browseList, cmd = m.browseList.Update(msg)
	case FavoritesView:
		m.favList, cmd = m.favList.Update(msg)
	}
	return m, cmd
}

func (m *Model) refreshBrowse() {
	m.browseList.SetItems(movieItems(m.movies, m.genres, m.deps.Favorites.IsFavorite))
}

func (m *Model) refreshFavorites() {
	always := func(int64) bool { return true }
	m.favList.SetItems(movieItems(m.deps.Favorites.Movies(), m.genres, always))
	m.favList.Title = fmt.Sprintf("Favorites (%d)", m.deps.Favorites.Len())
}

func (m *Model) loadHome() tea.Cmd {
	return func() tea.Msg {
		home, err := m.deps.Engine.Browse(m.ctx, nil, models.DiscoverOptions{})
		return homeLoadedMsg(home, err)
	}
}

func (m *Model) fetchGenres() tea.Cmd {
	return func() tea.Msg {
		genres, err := m.deps.Catalog.Genres(m.ctx)
		return genresFetchedMsg(genres, err)
	}
}

func (m *Model) loadMore() tea.Cmd {
	existing := m.movies
	next := m.lastPage + 1
	return func() tea.Msg {
		res, err := m.deps.Engine.LoadMore(m.ctx, nil, existing, tasks.LoadMoreRequest{From: next, To: next})
		return moreLoadedMsg(res, err)
	}
}

func (m *Model) fetchDetails(id int64) tea.Cmd {
	return func() tea.Msg {
		details, err := m.deps.Catalog.Movie(m.ctx, id)
		return detailsFetchedMsg(details, err)
	}
}

func (m *Model) toggleFavorite(movie models.Movie) tea.Cmd {
	return func() tea.Msg {
		on, err := m.deps.Favorites.Toggle(movie)
		return favoriteToggledMsg(movie, on, err)
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	return func() tea.Msg {
		mode, err := m.deps.Theme.Toggle()
		return themeToggledMsg(mode, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return m.palette.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	header := m.renderHeader()
	var body string
	switch m.view {
	case BrowseView:
		body = m.renderBrowse()
	case FavoritesView:
		body = m.renderFavorites()
	case DetailsView:
		body = m.renderDetails()
	}

	out := header + "\n" + body
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}

func (m *Model) renderHeader() string {
	greeting := "Welcome, " + m.deps.Session.DisplayName()
	if !m.deps.Session.IsAuthenticated() {
		greeting = "Browsing as guest"
	}

	header := m.palette.title.Render("movieMaze") + "\n" + greeting
	if m.featured != nil && m.view == BrowseView {
		header += "\n" + m.palette.ok.Render("Featured: ") + fmt.Sprintf("%s (%s)", m.featured.Title, formatter.FormatYear(*m.featured))
	}
	return header
}

func (m *Model) renderBrowse() string {
	if m.loading && len(m.movies) == 0 {
		return m.palette.help.Render("Loading movies...")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.tab}
	if m.hasMore {
		helpKeys = append(helpKeys, m.keys.more)
	}
	helpKeys = append(helpKeys, m.keys.theme, m.keys.quit)
	return fmt.Sprintf("%s\n\n%s", m.browseList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderFavorites() string {
	if m.deps.Favorites.Len() == 0 {
		empty := m.palette.help.Render("No favorites yet. Press f on a movie to save it.")
		return fmt.Sprintf("%s\n\n%s", empty, m.help.ShortHelpView([]key.Binding{m.keys.tab, m.keys.quit}))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.tab, m.keys.theme, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.favList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetails() string {
	if m.details == nil {
		return ""
	}

	status := "Not in favorites"
	if m.deps.Favorites.IsFavorite(m.details.ID) {
		status = m.palette.ok.Render("★ In favorites")
	}

	helpKeys := []key.Binding{m.keys.favorite, m.keys.back, m.keys.theme, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", formatter.FormatDetails(m.details, m.deps.ImageBaseURL), status, m.help.ShortHelpView(helpKeys))
}

func dedupe(movies []models.Movie) []models.Movie {
	seen := make(map[int64]bool, len(movies))
	out := movies[:0]
	for _, mv := range movies {
		if seen[mv.ID] {
			continue
		}
		seen[mv.ID] = true
		out = append(out, mv)
	}
	return out
}
