package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Movie is a catalog list entry as returned by the trending, search and discover endpoints.
type Movie struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	GenreIDs      []int   `json:"genre_ids"`
	Adult         bool    `json:"adult,omitempty"`
}

// Year returns the release year, or "" when the release date is unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Genre is a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a credited actor.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember is a credited crew member.
type CrewMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Video is a trailer, teaser or clip attached to a movie.
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// URL returns a watchable link for YouTube and Vimeo videos.
func (v Video) URL() string {
	switch v.Site {
	case "YouTube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "Vimeo":
		return "https://vimeo.com/" + v.Key
	default:
		return ""
	}
}

// Credits groups cast and crew.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Videos wraps the video list appended to movie details.
type Videos struct {
	Results []Video `json:"results"`
}

// MovieDetails is a single movie with the credits and videos extensions.
type MovieDetails struct {
	Movie
	Genres   []Genre `json:"genres"`
	Runtime  int     `json:"runtime"`
	Tagline  string  `json:"tagline"`
	Status   string  `json:"status"`
	Homepage string  `json:"homepage"`
	IMDBID   string  `json:"imdb_id"`
	Credits  Credits `json:"credits"`
	Videos   Videos  `json:"videos"`
}

// Directors returns the names of crew members credited as Director.
func (d MovieDetails) Directors() []string {
	var names []string
	for _, c := range d.Credits.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

// Trailer returns the first YouTube trailer, preferring official ones.
func (d MovieDetails) Trailer() (Video, bool) {
	var fallback *Video
	for i, v := range d.Videos.Results {
		if v.Site != "YouTube" || v.Type != "Trailer" {
			continue
		}
		if v.Official {
			return v, true
		}
		if fallback == nil {
			fallback = &d.Videos.Results[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Video{}, false
}

// MoviePage is one page of a paginated movie listing.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMore reports whether further pages exist.
func (p MoviePage) HasMore() bool {
	return p.Page < p.TotalPages
}

// FavoriteMovie is an opaque movie record held by the favorites store.
//
// Only the id is interpreted. The original JSON is kept as-is so fields the catalog adds later survive a round trip.
type FavoriteMovie struct {
	ID  int64
	raw json.RawMessage
}

// NewFavorite captures a catalog movie as a [FavoriteMovie].
func NewFavorite(m Movie) (FavoriteMovie, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return FavoriteMovie{}, fmt.Errorf("failed to encode movie %d: %w", m.ID, err)
	}
	return FavoriteMovie{ID: m.ID, raw: data}, nil
}

// ParseFavorite reads a favorite from raw catalog JSON. The object must carry a numeric id.
func ParseFavorite(data []byte) (FavoriteMovie, error) {
	var head struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return FavoriteMovie{}, fmt.Errorf("invalid favorite: %w", err)
	}
	if head.ID == nil {
		return FavoriteMovie{}, fmt.Errorf("invalid favorite: missing id")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return FavoriteMovie{}, fmt.Errorf("invalid favorite: %w", err)
	}
	return FavoriteMovie{ID: *head.ID, raw: compact.Bytes()}, nil
}

// MarshalJSON returns the stored catalog JSON.
func (f FavoriteMovie) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return json.Marshal(struct {
			ID int64 `json:"id"`
		}{f.ID})
	}
	return f.raw, nil
}

// UnmarshalJSON implements [json.Unmarshaler] via [ParseFavorite].
func (f *FavoriteMovie) UnmarshalJSON(data []byte) error {
	parsed, err := ParseFavorite(data)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Movie decodes the known catalog fields.
func (f FavoriteMovie) Movie() (Movie, error) {
	var m Movie
	data, err := f.MarshalJSON()
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to decode favorite %d: %w", f.ID, err)
	}
	return m, nil
}

// Raw returns a copy of the stored JSON.
func (f FavoriteMovie) Raw() json.RawMessage {
	data, _ := f.MarshalJSON()
	return append(json.RawMessage(nil), data...)
}

// DiscoverOptions filters a discover listing. Zero values leave a filter unset.
type DiscoverOptions struct {
	Genre     int
	Year      int
	MinRating float64
	Page      int
}

// TimeWindow is the trending window accepted by the catalog.
type TimeWindow string

const (
	TrendingDay  TimeWindow = "day"
	TrendingWeek TimeWindow = "week"
)
