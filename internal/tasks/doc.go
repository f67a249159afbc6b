// Package tasks orchestrates multi-request catalog operations with real-time progress reporting.
//
// # Core Operations
//
// [MovieEngine] implements three operations:
//
//  1. [MovieEngine.Browse] : Home screen load
//     - Fetches the weekly trending list and the first discover page
//     - Picks a featured movie at random among the top five trending results
//
//  2. [MovieEngine.LoadMore] : Infinite scroll
//     - Fetches a range of search or discover pages
//     - Appends results, skipping ids already seen
//
//  3. [MovieEngine.ExportFavorites] : Favorites export
//     - Fetches details for every favorite through a rate limited worker pool
//     - Falls back to the stored favorite record when a lookup fails
//     - Writes json, csv, markdown or txt plus an export manifest
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
