// Package catalog turns raw movie records into what the landing page shows.
//
// # Normalization
//
// [Normalizer] maps each [models.MovieRecord] to a [models.DisplayMovie]. Records whose resolved
// image is empty or references a placeholder or null sentinel are dropped, order is preserved,
// and an empty result is [shared.ErrNoValidContent]. Missing ratings are synthesized once, in
// [7.0, 9.0), from an injected random source.
//
// # Rendering
//
// A [Board] holds named rows. [Board.Render] replaces a row's contents with one [Card] per movie;
// [Board.RenderAll] fills the featured, recently added and popular rows with the original,
// shuffled and reversed orderings. Reordering never touches the canonical list held by the
// [Corpus].
//
// # Search
//
// The [Corpus] holds the most recently fetched movies and is replaced wholesale. [Index] filters it
// by case-folded substring. [Panel] is the search surface state; it drops results computed for a
// different query or an older corpus generation.
package catalog
