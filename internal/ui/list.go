package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/discover/internal/models"
)

var (
	_ list.Item = catalogItem{}
)

// catalogItem wraps [models.CatalogItem] to implement [list.Item].
type catalogItem struct {
	item models.CatalogItem
	key  string
}

func (i catalogItem) FilterValue() string { return i.item.Name }
func (i catalogItem) Title() string       { return i.item.Name }
func (i catalogItem) Description() string {
	desc := i.item.CoverURL()
	if n := len(i.item.Images); n > 1 {
		desc = fmt.Sprintf("%s • %d %s", desc, n, i.item.ImageKey)
	}
	return desc
}

// listItems converts the renderable items of a section into [list.Item] values, keyed by position.
func listItems(s models.Section) []list.Item {
	renderable := models.Renderable(s.Items)
	items := make([]list.Item, len(renderable))
	for i, item := range renderable {
		items[i] = catalogItem{item: item, key: models.ItemKey(item, i)}
	}
	return items
}
