package models

import "time"

// FavoritesExport is a snapshot of the favorites list with catalog details filled in.
type FavoritesExport struct {
	RunID      string         `json:"run_id"`
	ExportedAt time.Time      `json:"exported_at"`
	User       string         `json:"user"`
	Movies     []MovieDetails `json:"movies"`
	Missing    []int64        `json:"missing,omitempty"`
}

// ExportMetadata is the export summary written alongside the movie data.
type ExportMetadata struct {
	RunID      string    `json:"run_id"`
	ExportedAt time.Time `json:"exported_at"`
	User       string    `json:"user"`
	Format     string    `json:"format"`
	Count      int       `json:"count"`
	Missing    []int64   `json:"missing,omitempty"`
	Files      []string  `json:"files"`
}
