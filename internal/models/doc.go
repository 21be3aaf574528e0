// Package models defines the data shapes exchanged with the remote movie and auth APIs and the
// derived display model the client renders.
//
// The package contains two categories of types:
//
// 1. Wire types: decoded straight from JSON responses
//   - [MovieRecord] : Heterogeneous movie record from the paginated catalog endpoint
//   - [MoviePage] : One page of the catalog, with its `data` sequence
//   - [AuthResponse] : Success payload of signup/login/verify
//   - [ErrorResponse] : Failure payload carrying a human-readable message
//
// 2. Derived types: built by the client and never sent back
//   - [DisplayMovie] : Normalized, render-ready movie with resolved fallbacks
//   - [User] : Authenticated user as returned by the auth API
package models
