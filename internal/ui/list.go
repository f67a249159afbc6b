package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/moviemaze/internal/formatter"
	"github.com/desertthunder/moviemaze/internal/models"
)

var (
	_ list.Item = movieItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie    models.Movie
	favorite bool
	genres   formatter.GenreIndex
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	if i.favorite {
		return "★ " + i.movie.Title
	}
	return i.movie.Title
}
func (i movieItem) Description() string {
	desc := formatter.FormatYear(i.movie) + " • " + formatter.FormatRating(i.movie.VoteAverage)
	if names := i.genres.Names(i.movie.GenreIDs); len(names) > 0 {
		desc += " • " + strings.Join(names, ", ")
	}
	return desc
}

// movieItems wraps movies, flagging those isFavorite reports.
func movieItems(movies []models.Movie, genres formatter.GenreIndex, isFavorite func(int64) bool) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m, favorite: isFavorite(m.ID), genres: genres}
	}
	return items
}
