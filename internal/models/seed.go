package models

import "slices"

var seedAlbums = []Album{
	{ID: 0, Title: "Mezzanine", Artist: "Massive Attack", Year: 1998, Cover: "https://picsum.photos/seed/album-0/300/300"},
	{ID: 1, Title: "Kind of Blue", Artist: "Miles Davis", Year: 1959, Cover: "https://picsum.photos/seed/album-1/300/300"},
	{ID: 2, Title: "Homogenic", Artist: "Björk", Year: 1997, Cover: "https://picsum.photos/seed/album-2/300/300"},
	{ID: 3, Title: "Remain in Light", Artist: "Talking Heads", Year: 1980, Cover: "https://picsum.photos/seed/album-3/300/300"},
	{ID: 4, Title: "Blue Lines", Artist: "Massive Attack", Year: 1991, Cover: "https://picsum.photos/seed/album-4/300/300"},
}

var seedFavorites = []Favorite{
	{ID: 0, Title: "Chickpea Curry", Source: "Minimalist Baker", ReadyInMinutes: 30, Image: "https://picsum.photos/seed/recipe-0/312/231"},
	{ID: 1, Title: "Lentil Bolognese", Source: "Rainbow Plant Life", ReadyInMinutes: 45, Image: "https://picsum.photos/seed/recipe-1/312/231"},
}

// SeedAlbums returns a fresh copy of the built-in album collection.
func SeedAlbums() []Album { return slices.Clone(seedAlbums) }

// SeedFavorites returns a fresh copy of the built-in recipe favorites.
func SeedFavorites() []Favorite { return slices.Clone(seedFavorites) }
