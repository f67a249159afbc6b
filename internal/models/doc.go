// Package models defines the domain types shared by the moviemaze stores, the catalog client and the presentation layers.
//
// The package contains three groups of types:
//
// 1. Storage: the [SlotStore] contract for the durable key-value facility and the fixed slot keys
//   - [SlotSession] : current [UserRecord]
//   - [SlotLegacySession] : older `{username}` record, read once for migration
//   - [SlotFavorites] : sequence of [FavoriteMovie]
//   - [SlotTheme] : "light" | "dark"
//   - [SlotAccounts] : sequence of [Credential]
//
// 2. Identity: [UserRecord] with its construction input [Profile] and merge input [UserPatch]
//
// 3. Catalog DTOs: [Movie], [MovieDetails], [MoviePage], [Genre] mirroring TMDB responses, and
// [FavoriteMovie], an opaque movie record that keeps the catalog JSON untouched.
package models
