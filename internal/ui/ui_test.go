package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moviemaze/internal/favorites"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/repositories"
	"github.com/desertthunder/moviemaze/internal/session"
	"github.com/desertthunder/moviemaze/internal/shared"
	tu "github.com/desertthunder/moviemaze/internal/testing"
	"github.com/desertthunder/moviemaze/internal/theme"
)

func newTestModel(t *testing.T) (*Model, *favorites.Store, *theme.Store) {
	t.Helper()
	slots := repositories.NewMemorySlotStore()
	logger := shared.DiscardLogger()

	sess, err := session.Open(slots, session.WithLogger(logger))
	if err != nil {
		t.Fatalf("session.Open failed: %v", err)
	}
	if _, err := sess.Login(models.Profile{Name: "Ada"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	favs := favorites.Open(slots, logger)
	th := theme.Open(slots, logger)
	catalog := tu.NewMockCatalog(
		models.Movie{ID: 1, Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 8.3},
		models.Movie{ID: 2, Title: "Ronin", ReleaseDate: "1998-09-25", VoteAverage: 7.2},
	)

	m := NewModel(context.Background(), Deps{Catalog: catalog, Session: sess, Favorites: favs, Theme: th, Logger: logger})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, favs, th
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs cmd and feeds its message back into the model.
func exec(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func TestModel(t *testing.T) {
	t.Run("home load fills the browse list", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		exec(t, m, m.loadHome())

		if len(m.movies) != 2 {
			t.Fatalf("expected 2 movies after dedupe, got %d", len(m.movies))
		}
		if m.featured == nil {
			t.Error("expected a featured movie")
		}
		if !strings.Contains(m.View(), "Welcome, Ada") {
			t.Errorf("header should greet the user, got %q", m.View())
		}
	})

	t.Run("f toggles the selected favorite", func(t *testing.T) {
		m, favs, _ := newTestModel(t)
		exec(t, m, m.loadHome())

		_, cmd := m.Update(runes("f"))
		exec(t, m, cmd)
		if !favs.IsFavorite(1) {
			t.Fatal("expected movie 1 to be a favorite")
		}
		if m.favList.Title != "Favorites (1)" {
			t.Errorf("favorites title = %q", m.favList.Title)
		}

		_, cmd = m.Update(runes("f"))
		exec(t, m, cmd)
		if favs.IsFavorite(1) {
			t.Error("expected movie 1 to be removed")
		}
	})

	t.Run("tab switches lists", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.view != FavoritesView {
			t.Fatalf("expected favorites view, got %v", m.view)
		}
		if !strings.Contains(m.View(), "No favorites yet") {
			t.Error("expected empty favorites message")
		}
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.view != BrowseView {
			t.Errorf("expected browse view, got %v", m.view)
		}
	})

	t.Run("enter opens details and esc goes back", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		exec(t, m, m.loadHome())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		exec(t, m, cmd)
		if m.view != DetailsView || m.details == nil {
			t.Fatalf("expected details view, got %v", m.view)
		}
		if !strings.Contains(m.View(), "Heat") {
			t.Error("details should render the title")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != BrowseView {
			t.Errorf("expected browse view after esc, got %v", m.view)
		}
	})

	t.Run("t toggles and persists the theme", func(t *testing.T) {
		m, _, th := newTestModel(t)
		_, cmd := m.Update(runes("t"))
		exec(t, m, cmd)

		if th.Mode() != theme.Dark {
			t.Errorf("expected dark mode, got %s", th.Mode())
		}
		if m.palette != darkPalette {
			t.Error("palette should follow the theme")
		}
	})

	t.Run("home load failure is shown", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.Update(homeLoadedMsg(nil, shared.ErrServiceUnavailable))
		if !strings.Contains(m.View(), "Error") {
			t.Errorf("expected error view, got %q", m.View())
		}
	})
}
