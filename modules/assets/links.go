package assets

import "github.com/stocktakehq/stocktake/pkg/types"

var AssetsLink = types.NavigationItem{
	Name: "NavigationLinks.Assets",
	Href: "/api/assets",
}

var ContainersLink = types.NavigationItem{
	Name: "NavigationLinks.Containers",
	Href: "/api/assets/containers",
}

var NavItems = []types.NavigationItem{
	AssetsLink,
	ContainersLink,
}
