package types

// NavigationItem describes an entry in the sidebar navigation tree.
type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
}
