// TMDB API implementation of [Catalog]
//
// TMDB API response types based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// tmdbError is the error body TMDB returns alongside non-2xx responses.
type tmdbError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

type genreList struct {
	Genres []models.Genre `json:"genres"`
}

// TMDBService implements [Catalog] for the TMDB v3 API.
type TMDBService struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        MovieCache
	logger       *log.Logger
}

// TMDBOption configures a [TMDBService].
type TMDBOption func(*TMDBService)

// WithHTTPClient sets the base HTTP client. When a read access token is configured the bearer transport wraps it.
func WithHTTPClient(c *http.Client) TMDBOption {
	return func(s *TMDBService) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithMovieCache enables detail caching.
func WithMovieCache(c MovieCache) TMDBOption {
	return func(s *TMDBService) { s.cache = c }
}

// WithLogger sets the logger for cache and request diagnostics.
func WithLogger(l *log.Logger) TMDBOption {
	return func(s *TMDBService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewTMDBService creates a TMDB client from cfg.
func NewTMDBService(cfg shared.CatalogConfig, opts ...TMDBOption) (*TMDBService, error) {
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("%w: set catalog.api_key or catalog.read_access_token", shared.ErrMissingCredentials)
	}

	s := &TMDBService{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		language:     cfg.Language,
		httpClient:   http.DefaultClient,
		limiter:      NewLimiter(cfg.RateLimit),
		logger:       shared.DiscardLogger(),
	}
	if s.baseURL == "" {
		s.baseURL = tmdbBaseURL
	}
	if s.imageBaseURL == "" {
		s.imageBaseURL = tmdbImageBaseURL
	}

	for _, opt := range opts {
		opt(s)
	}

	if cfg.ReadAccessToken != "" {
		s.httpClient = BearerClient(s.httpClient, cfg.ReadAccessToken)
	} else {
		s.apiKey = cfg.APIKey
	}

	return s, nil
}

// BearerClient wraps base so every request carries token as an OAuth2 bearer.
func BearerClient(base *http.Client, token string) *http.Client {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
}

// NewLimiter returns a limiter allowing perSecond requests with a matching burst. Zero or less disables limiting.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
}

func (s *TMDBService) Name() string {
	return "TMDB"
}

// ImageURL resolves a poster or backdrop path. Empty paths stay empty.
func (s *TMDBService) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return s.imageBaseURL + path
}

// doRequest performs a rate limited GET against the TMDB API and decodes the JSON body into result.
func (s *TMDBService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}
	if s.language != "" && params.Get("language") == "" {
		params.Set("language", s.language)
	}

	apiURL := s.baseURL + endpoint
	if encoded := params.Encode(); encoded != "" {
		apiURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body tmdbError
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return statusError(resp.StatusCode, body.StatusMessage)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func statusError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: tmdb: %s", shared.ErrNotAuthenticated, message)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: tmdb: %s", shared.ErrMovieNotFound, message)
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: tmdb status %d: %s", shared.ErrServiceUnavailable, status, message)
	default:
		return fmt.Errorf("%w: tmdb status %d: %s", shared.ErrAPIRequest, status, message)
	}
}

// Trending retrieves trending movies for the day or week window.
func (s *TMDBService) Trending(ctx context.Context, window models.TimeWindow) (*models.MoviePage, error) {
	if window != models.TrendingDay {
		window = models.TrendingWeek
	}

	var page models.MoviePage
	if err := s.doRequest(ctx, "/trending/movie/"+string(window), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search retrieves movies whose title matches query.
func (s *TMDBService) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &models.MoviePage{Page: 1, Results: []models.Movie{}}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(max(page, 1)))
	params.Set("include_adult", "false")

	var result models.MoviePage
	if err := s.doRequest(ctx, "/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Discover retrieves movies filtered by genre, release year and minimum rating.
func (s *TMDBService) Discover(ctx context.Context, opts models.DiscoverOptions) (*models.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(max(opts.Page, 1)))
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	if opts.Genre > 0 {
		params.Set("with_genres", strconv.Itoa(opts.Genre))
	}
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}
	if opts.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(opts.MinRating, 'f', -1, 64))
	}

	var result models.MoviePage
	if err := s.doRequest(ctx, "/discover/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Movie retrieves a movie with its videos and credits, consulting the cache first when one is set.
func (s *TMDBService) Movie(ctx context.Context, id int64) (*models.MovieDetails, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: movie id must be positive, got %d", shared.ErrInvalidArgument, id)
	}

	if s.cache != nil {
		cached, err := s.cache.GetMovie(id)
		if err == nil {
			s.logger.Debug("movie cache hit", "id", id)
			return cached, nil
		}
		if !errors.Is(err, shared.ErrCacheMiss) {
			s.logger.Warn("movie cache read failed", "id", id, "error", err)
		}
	}

	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	var details models.MovieDetails
	if err := s.doRequest(ctx, fmt.Sprintf("/movie/%d", id), params, &details); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.PutMovie(&details); err != nil {
			s.logger.Warn("failed to cache movie", "id", id, "error", err)
		}
	}
	return &details, nil
}

// Genres retrieves the movie genre list.
func (s *TMDBService) Genres(ctx context.Context) ([]models.Genre, error) {
	var list genreList
	if err := s.doRequest(ctx, "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	return list.Genres, nil
}

var _ Catalog = (*TMDBService)(nil)
