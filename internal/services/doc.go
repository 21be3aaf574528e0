// Package services wraps the remote HTTP APIs the client consumes.
//
// # Raw Access
//
// [APIService] performs GET and POST requests and returns an [APIResponse] holding the status,
// headers and body. Paths are joined to the base URL unless they are absolute.
//
// # Movies
//
// [MovieService] reads the paginated catalog endpoint. It fetches the configured number of pages
// in order, paced by a [rate.Limiter], and concatenates their records. Any failure is reported as
// [shared.ErrFetchFailed]; normalization happens later in the catalog package.
//
// # Auth
//
// [AuthService] issues POST /api/signup, /api/login and /api/verify. Failures are returned as
// [*AuthError] whose message is safe to show to the user:
//   - [shared.ErrAuthRejected] : the server answered non-2xx; message is the server's or "Authentication failed"
//   - [shared.ErrTransport] : the request or the response body could not be processed
//   - [shared.ErrVerifyRejected] : a verify call failed for any reason
//
// No request is retried.
package services
