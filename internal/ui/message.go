package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/tasks"
	"github.com/desertthunder/moviemaze/internal/theme"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgHomeLoaded MsgKind = iota
	MsgGenresFetched
	MsgMoreLoaded
	MsgDetailsFetched
	MsgFavoriteToggled
	MsgThemeToggled
)

type homeLoaded struct {
	home *tasks.HomeResult
	err  error
}

type genresFetched struct {
	genres []models.Genre
	err    error
}

type moreLoaded struct {
	result *tasks.LoadMoreResult
	err    error
}

type detailsFetched struct {
	details *models.MovieDetails
	err     error
}

type favoriteToggled struct {
	movie    models.Movie
	favorite bool
	err      error
}

type themeToggled struct {
	mode theme.Mode
	err  error
}

// homeLoadedMsg is the constructor for [MsgHomeLoaded]
func homeLoadedMsg(home *tasks.HomeResult, err error) Msg {
	return Msg{kind: MsgHomeLoaded, data: homeLoaded{home, err}}
}

// genresFetchedMsg is the constructor for [MsgGenresFetched]
func genresFetchedMsg(genres []models.Genre, err error) Msg {
	return Msg{kind: MsgGenresFetched, data: genresFetched{genres, err}}
}

// moreLoadedMsg is the constructor for [MsgMoreLoaded]
func moreLoadedMsg(result *tasks.LoadMoreResult, err error) Msg {
	return Msg{kind: MsgMoreLoaded, data: moreLoaded{result, err}}
}

// detailsFetchedMsg is the constructor for [MsgDetailsFetched]
func detailsFetchedMsg(details *models.MovieDetails, err error) Msg {
	return Msg{kind: MsgDetailsFetched, data: detailsFetched{details, err}}
}

// favoriteToggledMsg is the constructor for [MsgFavoriteToggled]
func favoriteToggledMsg(movie models.Movie, favorite bool, err error) Msg {
	return Msg{kind: MsgFavoriteToggled, data: favoriteToggled{movie, favorite, err}}
}

// themeToggledMsg is the constructor for [MsgThemeToggled]
func themeToggledMsg(mode theme.Mode, err error) Msg {
	return Msg{kind: MsgThemeToggled, data: themeToggled{mode, err}}
}
