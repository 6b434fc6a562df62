package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/discover/internal/models"
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
	MsgSnapshot MsgKind = iota
	MsgWatchClosed
)

// snapshotMsg is the constructor for [MsgSnapshot]
func snapshotMsg(snap models.Snapshot) Msg {
	return Msg{kind: MsgSnapshot, data: snap}
}

// watchClosedMsg is the constructor for [MsgWatchClosed]
func watchClosedMsg() Msg {
	return Msg{kind: MsgWatchClosed}
}
