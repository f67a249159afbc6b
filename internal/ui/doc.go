// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides three views:
//  1. [BrowseView] : Trending movies followed by discover pages, with a featured pick in the header
//  2. [FavoritesView] : The saved favorites in insertion order
//  3. [DetailsView] : Credits, runtime and trailer for the selected movie
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Favorites and theme changes go straight to their stores, so the CLI and local API observe them after a reload.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
