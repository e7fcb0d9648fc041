// Package models defines the entities kept in crate collections and the contract the collection manager relies on.
//
// Entity kinds:
//   - [Album] : a release identified by title and artist, bounded by a [YearRange]
//   - [Favorite] : a saved recipe identified by title and source
//
// Every kind implements [Entity], which exposes the assigned id, the two identity fields fed to [IdentityKey],
// and WithID, which stamps the manager-assigned id and fills id-derived defaults.
//
// Constructors ([NewAlbum], [NewFavorite]) validate caller input and return errors wrapping [shared.ErrInvalidInput].
// A rejected insert surfaces as [*DuplicateError].
//
// Seed datasets ([SeedAlbums], [SeedFavorites]) are package constants handed out as fresh copies.
package models
