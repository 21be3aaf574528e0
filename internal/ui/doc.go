// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// The TUI has three pages, mirroring the site it stands in for:
//  1. [PageLanding] : hero banner, three carousel rows and the search panel
//  2. [PageAuth] : sign in / sign up tabs backed by the auth API
//  3. [PagePlayer] : the player placeholder reached through a player link
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// All state changes happen in Update, which is the single UI thread; network calls run as commands and report back
// through messages. Every page navigation re-reads the session and verifies a stored token, so the navbar moves
// from optimistic to verified or back to logged out.
//
// Keyboard navigation uses arrow/vim bindings with contextual help displayed via charmbracelet/bubbles/help.
package ui
