// Package services defines the [Catalog] interface for movie metadata providers and implements it for TMDB.
//
// # Catalog Interface
//
// Stores and tasks only see [Catalog], so tests substitute an in-memory double.
//
// # TMDB Implementation
//
// [TMDBService] talks to the TMDB v3 REST API. Two credential styles are supported:
//   - api_key: v3 key, sent as the api_key query parameter
//   - read_access_token: v4 token, sent as a bearer token through [oauth2.StaticTokenSource]
//
// Every request waits on a [rate.Limiter] before it is sent. Movie details can be cached through a [MovieCache].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingCredentials] : no api_key or read_access_token configured
//   - [shared.ErrNotAuthenticated] : TMDB rejected the credentials
//   - [shared.ErrMovieNotFound] : unknown movie id
//   - [shared.ErrServiceUnavailable] : rate limited or server error
//   - [shared.ErrAPIRequest] : any other non-2xx response
//
// [APIService] performs raw GET requests for debugging.
package services
