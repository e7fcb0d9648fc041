package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/crate/internal/collection"
	"github.com/desertthunder/crate/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgAlbumsLoaded MsgKind = iota
	MsgAlbumAdded
	MsgAlbumsReset
)

type addedData struct {
	result collection.Result[models.Album]
	err    error
}

// albumsLoadedMsg is the constructor for [MsgAlbumsLoaded]
func albumsLoadedMsg(albums []models.Album) Msg {
	return Msg{kind: MsgAlbumsLoaded, data: albums}
}

// albumAddedMsg is the constructor for [MsgAlbumAdded]
func albumAddedMsg(result collection.Result[models.Album], err error) Msg {
	return Msg{kind: MsgAlbumAdded, data: addedData{result, err}}
}

// albumsResetMsg is the constructor for [MsgAlbumsReset]
func albumsResetMsg(result collection.Result[models.Album]) Msg {
	return Msg{kind: MsgAlbumsReset, data: result}
}
