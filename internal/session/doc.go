// Package session holds the signed-in state of one client process.
//
// [Store] is the process-scoped key/value store with the keys authToken, userId, userEmail and
// userName. [Flow] runs the sign-in and sign-up forms: it validates, calls the auth API without
// touching the store, and only [Flow.Commit] of a successful outcome persists the session.
// [Navbar] is the three-state presenter (logged out, optimistic, verified) that reconciles a
// stored token against the verify endpoint and purges the store when verification fails.
package session
