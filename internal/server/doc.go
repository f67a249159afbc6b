// Package server provides HTTP routing, middleware, and the local JSON API over the session, favorites and theme stores.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns internally, so one path can serve several
// methods and path wildcards are read with [http.Request.PathValue].
//
// # API
//
//	GET    /healthz
//	GET    /api/session           → current user or 401
//	POST   /api/session/login     → profile login or email/password authentication
//	PATCH  /api/session           → partial profile update
//	POST   /api/session/logout
//	GET    /api/favorites
//	POST   /api/favorites         → raw catalog movie JSON
//	DELETE /api/favorites/{id}
//	GET    /api/theme
//	POST   /api/theme/toggle
//
// POST and PATCH requests must be sent as application/json; anything else gets 415.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
