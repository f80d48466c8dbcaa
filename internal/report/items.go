package report

// ItemKind tells list renderers how to draw an Item.
type ItemKind int

const (
	ItemSummary ItemKind = iota
	ItemCategory
	ItemSubCategory
)

// Item is one row of the flattened report.
type Item struct {
	Kind        ItemKind
	Category    string
	SubCategory string

	// Summary is set for ItemSummary rows.
	Summary Summary

	// Stats is set for ItemSubCategory rows.
	Stats SubCategoryStats
}

// Items flattens the report: the summary row first, then each category
// header followed by its sub-category rows.
func (r Report) Items() []Item {
	items := []Item{{Kind: ItemSummary, Summary: r.Summary}}
	for _, g := range r.Categories {
		items = append(items, Item{Kind: ItemCategory, Category: g.Name})
		for _, s := range g.SubCategories {
			items = append(items, Item{
				Kind:        ItemSubCategory,
				Category:    g.Name,
				SubCategory: s.Name,
				Stats:       s,
			})
		}
	}
	return items
}

// Selectable reports whether a row accepts quiz actions.
func (i Item) Selectable() bool {
	return i.Kind == ItemSummary || i.Kind == ItemSubCategory
}
