// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// MockCatalog is a test double for [services.Catalog].
//
// Movies are served from Details; Pages holds the listing returned for every trending, search and discover call.
// Calls records the method name of each request.
type MockCatalog struct {
	mu        sync.Mutex
	Pages     []models.MoviePage
	Details   map[int64]*models.MovieDetails
	GenreList []models.Genre
	Err       error
	Calls     []string
}

// NewMockCatalog builds a catalog whose first page holds movies and whose details cover each of them.
func NewMockCatalog(movies ...models.Movie) *MockCatalog {
	details := make(map[int64]*models.MovieDetails, len(movies))
	for _, m := range movies {
		details[m.ID] = &models.MovieDetails{Movie: m, Runtime: 100}
	}
	return &MockCatalog{
		Pages:     []models.MoviePage{{Page: 1, Results: movies, TotalPages: 1, TotalResults: len(movies)}},
		Details:   details,
		GenreList: []models.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}},
	}
}

func (m *MockCatalog) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many times method was called.
func (m *MockCatalog) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *MockCatalog) page(n int) (*models.MoviePage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if n < 1 {
		n = 1
	}
	if n > len(m.Pages) {
		return &models.MoviePage{Page: n, TotalPages: len(m.Pages)}, nil
	}
	p := m.Pages[n-1]
	return &p, nil
}

func (m *MockCatalog) Trending(ctx context.Context, window models.TimeWindow) (*models.MoviePage, error) {
	m.record("Trending")
	return m.page(1)
}

func (m *MockCatalog) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	m.record("Search")
	return m.page(page)
}

func (m *MockCatalog) Discover(ctx context.Context, opts models.DiscoverOptions) (*models.MoviePage, error) {
	m.record("Discover")
	return m.page(opts.Page)
}

func (m *MockCatalog) Movie(ctx context.Context, id int64) (*models.MovieDetails, error) {
	m.record("Movie")
	if m.Err != nil {
		return nil, m.Err
	}
	d, ok := m.Details[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
	}
	return d, nil
}

func (m *MockCatalog) Genres(ctx context.Context) ([]models.Genre, error) {
	m.record("Genres")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.GenreList, nil
}

// FailingSlotStore wraps a [models.SlotStore] and fails writes once Fail is set.
type FailingSlotStore struct {
	models.SlotStore
	Fail   bool
	Writes int
}

func (f *FailingSlotStore) Set(key string, value []byte) error {
	if f.Fail {
		return errors.New("disk full")
	}
	f.Writes++
	return f.SlotStore.Set(key, value)
}

func (f *FailingSlotStore) Delete(key string) error {
	if f.Fail {
		return errors.New("disk full")
	}
	f.Writes++
	return f.SlotStore.Delete(key)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
