// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI manages the album collection through three views:
//  1. [AlbumListView] : Browse the collection (filterable bubbles list)
//  2. [AddFormView] : Enter title, artist and year for a new album
//  3. [ConfirmResetView] : Confirm restoring the seed collection
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving results of
// catalog calls via the [Msg] union type. Duplicate and validation errors are shown inline on the form;
// a write that did not reach the store is reported in the status line but keeps the in-memory result.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
