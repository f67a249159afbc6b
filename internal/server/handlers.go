package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/desertthunder/moviemaze/internal/theme"
)

// maxBody bounds request bodies; profile images are sent inline as data URIs.
const maxBody = 8 << 20

type errorBody struct {
	Error string `json:"error"`
}

// loginRequest accepts either a profile or email/password credentials.
type loginRequest struct {
	models.Profile
	Password string `json:"password,omitempty"`
}

type themeBody struct {
	Theme theme.Mode `json:"theme"`
}

type favoriteBody struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorite"`
}

// healthHandler answers liveness probes.
type healthHandler struct{}

func (healthHandler) Routes() []string { return []string{"GET /healthz"} }

func (healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps sentinel errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrNoSession), errors.Is(err, shared.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, shared.ErrInvalidProfile), errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument), errors.Is(err, shared.ErrMissingArgument):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrAccountExists):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	user, ok := s.deps.Session.Current()
	if !ok {
		writeError(w, shared.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	profile := req.Profile
	if req.Password != "" {
		if s.deps.Accounts == nil {
			writeError(w, fmt.Errorf("%w: password login is not enabled", shared.ErrInvalidArgument))
			return
		}
		cred, err := s.deps.Accounts.Authenticate(req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		profile = models.Profile{Username: cred.Email, Email: cred.Email, Name: cred.Name}
	}

	user, err := s.deps.Session.Login(profile)
	if err != nil {
		writeError(w, err)
		return
	}
	s.deps.Logger.Info("signed in", "user", s.deps.Session.DisplayName())
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateSession(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.deps.Session.UpdateUser(r.Context(), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Session.Logout(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	items := s.deps.Favorites.List()
	if items == nil {
		items = []models.FavoriteMovie{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	fav, err := models.ParseFavorite(data)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	added, err := s.deps.Favorites.Add(fav)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, favoriteBody{ID: fav.ID, Favorite: true})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, fmt.Errorf("%w: movie id %q", shared.ErrInvalidArgument, r.PathValue("id")))
		return
	}

	removed, err := s.deps.Favorites.Remove(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorBody{Error: fmt.Sprintf("movie %d is not a favorite", id)})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: s.deps.Theme.Mode()})
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	mode, err := s.deps.Theme.Toggle()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: mode})
}
