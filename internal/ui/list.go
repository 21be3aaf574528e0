package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/marquee/internal/catalog"
	"github.com/desertthunder/marquee/internal/player"
)

var (
	_ list.Item = searchItem{}
)

// searchItem wraps [catalog.SearchResult] to implement [list.Item].
type searchItem struct {
	result catalog.SearchResult
}

func (i searchItem) FilterValue() string { return i.result.Title }
func (i searchItem) Title() string       { return i.result.Title }
func (i searchItem) Description() string { return "⭐ " + player.FormatRating(i.result.Rating) }

func searchItems(res catalog.Results) []list.Item {
	items := make([]list.Item, len(res.Items))
	for i, r := range res.Items {
		items[i] = searchItem{result: r}
	}
	return items
}
