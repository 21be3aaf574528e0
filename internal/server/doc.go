// Package server provides HTTP routing, middleware, and devapi, a local stand-in for the remote
// movie and auth APIs.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [ChiRouter] implementation uses a [chi.Mux] internally, which answers 405 for known paths
// requested with the wrong method.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [MoviesHandler] serves the paginated catalog this way.
//
// # devapi
//
// [DevAPI] keeps accounts in memory and mints HS256 tokens:
//   - POST /api/signup {name,email,password} : 201 {token,user,message}, 409 when the email exists
//   - POST /api/login {email,password} : 200 {token,user,message}, 401 on bad credentials
//   - POST /api/verify {token} : 200 {user}, 401 for invalid or expired tokens
//   - GET /movies/paginated?page=N : the embedded fixture catalog, paginated
//
// Failures carry {"message": "..."} like the hosted API. Nothing is persisted.
package server
