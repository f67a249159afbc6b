// package formatter renders movie data for the terminal and exports favorites to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// FormatRating renders a vote average as "7.5/10", or "N/A" when unrated.
func FormatRating(vote float64) string {
	if vote <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(vote, 'f', 1, 64) + "/10"
}

// FormatRuntime renders minutes as "2h 19m".
func FormatRuntime(minutes int) string {
	switch {
	case minutes <= 0:
		return "N/A"
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}

// FormatYear returns the release year or "N/A".
func FormatYear(m models.Movie) string {
	if y := m.Year(); y != "" {
		return y
	}
	return "N/A"
}

// GenreIndex maps genre ids to names.
type GenreIndex map[int]string

// NewGenreIndex builds a [GenreIndex] from a genre list.
func NewGenreIndex(genres []models.Genre) GenreIndex {
	idx := make(GenreIndex, len(genres))
	for _, g := range genres {
		idx[g.ID] = g.Name
	}
	return idx
}

// Names resolves ids to names, skipping unknown ids.
func (g GenreIndex) Names(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := g[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// GenreNames joins the names of a details record's genres.
func GenreNames(genres []models.Genre) string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

// FormatMovieLine renders one list row: "1. Title (Year) ★ 7.5/10 [Drama, Crime]".
func FormatMovieLine(i int, m models.Movie, genres GenreIndex) string {
	line := fmt.Sprintf("%d. %s (%s) ★ %s", i, m.Title, FormatYear(m), FormatRating(m.VoteAverage))
	if names := genres.Names(m.GenreIDs); len(names) > 0 {
		line += " [" + strings.Join(names, ", ") + "]"
	}
	return line
}

// FormatDetails renders a movie's details as a multi-line block.
func FormatDetails(d *models.MovieDetails, imageBaseURL string) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%s (%s)\n", d.Title, FormatYear(d.Movie))
	if d.Tagline != "" {
		fmt.Fprintf(&buf, "%q\n", d.Tagline)
	}
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "Rating:   %s (%d votes)\n", FormatRating(d.VoteAverage), d.VoteCount)
	fmt.Fprintf(&buf, "Runtime:  %s\n", FormatRuntime(d.Runtime))
	if g := GenreNames(d.Genres); g != "" {
		fmt.Fprintf(&buf, "Genres:   %s\n", g)
	}
	if directors := d.Directors(); len(directors) > 0 {
		fmt.Fprintf(&buf, "Director: %s\n", strings.Join(directors, ", "))
	}
	if len(d.Credits.Cast) > 0 {
		cast := make([]string, 0, 5)
		for _, c := range d.Credits.Cast[:min(5, len(d.Credits.Cast))] {
			cast = append(cast, c.Name)
		}
		fmt.Fprintf(&buf, "Cast:     %s\n", strings.Join(cast, ", "))
	}
	if trailer, ok := d.Trailer(); ok {
		fmt.Fprintf(&buf, "Trailer:  %s\n", trailer.URL())
	}
	if d.PosterPath != "" && imageBaseURL != "" {
		fmt.Fprintf(&buf, "Poster:   %s%s\n", imageBaseURL, d.PosterPath)
	}
	fmt.Fprintf(&buf, "Page:     %s\n", shared.MoviePageURL(d.ID))
	if d.Overview != "" {
		fmt.Fprintf(&buf, "\n%s\n", d.Overview)
	}
	return buf.String()
}

func director(d models.MovieDetails) string {
	return strings.Join(d.Directors(), ", ")
}

// ExportToCSV converts a FavoritesExport to CSV format with columns: ID, Title, Year, Rating, Runtime, Genres, Director
func ExportToCSV(export *models.FavoritesExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating", "Runtime", "Genres", "Director"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range export.Movies {
		record := []string{
			strconv.FormatInt(movie.ID, 10),
			movie.Title,
			movie.Year(),
			strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64),
			strconv.Itoa(movie.Runtime),
			GenreNames(movie.Genres),
			director(movie),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a FavoritesExport to Markdown format. posters maps movie ids to local poster files.
func ExportToMarkdown(export *models.FavoritesExport, posters map[int64]string) ([]byte, error) {
	var buf bytes.Buffer

	title := "Favorites"
	if export.User != "" {
		title = export.User + "'s Favorites"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n", len(export.Movies)))
	if !export.ExportedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Exported**: %s\n", export.ExportedAt.Format(time.DateOnly)))
	}
	buf.WriteString("\n")

	for _, movie := range export.Movies {
		buf.WriteString(fmt.Sprintf("## %s (%s)\n\n", movie.Title, FormatYear(movie.Movie)))
		if poster, ok := posters[movie.ID]; ok {
			buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", poster))
		}
		buf.WriteString(fmt.Sprintf("- **Rating**: %s\n", FormatRating(movie.VoteAverage)))
		buf.WriteString(fmt.Sprintf("- **Runtime**: %s\n", FormatRuntime(movie.Runtime)))
		if g := GenreNames(movie.Genres); g != "" {
			buf.WriteString(fmt.Sprintf("- **Genres**: %s\n", g))
		}
		if d := director(movie); d != "" {
			buf.WriteString(fmt.Sprintf("- **Director**: %s\n", d))
		}
		buf.WriteString(fmt.Sprintf("- **TMDB**: %s\n", shared.MoviePageURL(movie.ID)))
		if movie.Overview != "" {
			buf.WriteString(fmt.Sprintf("\n%s\n", movie.Overview))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a FavoritesExport to plain text format
func ExportToText(export *models.FavoritesExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("Favorites\n")
	if export.User != "" {
		buf.WriteString(fmt.Sprintf("User: %s\n", export.User))
	}
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(export.Movies)))

	for i, movie := range export.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%s) - %s\n", i+1, movie.Title, FormatYear(movie.Movie), FormatRating(movie.VoteAverage)))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates the pretty-printed export manifest
func ToMetadataJSON(meta models.ExportMetadata) ([]byte, error) {
	return shared.MarshalJSON(meta, true)
}

// WriteJSONExport writes the full export, details included, to path.
func WriteJSONExport(export *models.FavoritesExport, path string) (string, error) {
	if path == "" {
		path = "favorites.json"
	}

	data, err := shared.MarshalJSON(export, true)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}

// WriteCSVExport writes {base}_movies.csv. base defaults to "favorites".
func WriteCSVExport(export *models.FavoritesExport, base string) (string, error) {
	if base == "" {
		base = "favorites"
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	moviesFile := base + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return moviesFile, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Posters   int
}

// WriteMarkdownExport exports favorites to Markdown format in a dedicated directory.
//
// When imageBaseURL is set, posters are downloaded into {dir}/posters. Failed downloads are skipped.
// Creates a directory structure: {dir}/README.md and optionally {dir}/posters/{id}.jpg
func WriteMarkdownExport(export *models.FavoritesExport, outputDir string, imageBaseURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "favorites"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	posters := map[int64]string{}
	if imageBaseURL != "" {
		posterDir := filepath.Join(outputDir, "posters")
		if err := os.MkdirAll(posterDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create poster directory: %w", err)
		}

		for _, movie := range export.Movies {
			if movie.PosterPath == "" {
				continue
			}
			imageData, err := DownloadImage(imageBaseURL + movie.PosterPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to download poster for %s: %v\n", movie.Title, err)
				continue
			}

			name := fmt.Sprintf("%d%s", movie.ID, filepath.Ext(movie.PosterPath))
			path := filepath.Join(posterDir, name)
			if err := os.WriteFile(path, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save poster for %s: %v\n", movie.Title, err)
				continue
			}
			posters[movie.ID] = "posters/" + name
			result.Files = append(result.Files, path)
			result.Posters++
		}
	}

	mdData, err := ExportToMarkdown(export, posters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports favorites to plain text format.
//
// Defaults to favorites.txt as the filename.
func WriteTextExport(export *models.FavoritesExport, path string) (string, error) {
	if path == "" {
		path = "favorites.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}
