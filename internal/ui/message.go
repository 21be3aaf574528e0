package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/session"
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
	MsgMoviesFetched MsgKind = iota
	MsgVerified
	MsgAuthDone
	MsgRedirect
	MsgToastExpired
	MsgScrollFrame
)

type moviesFetched struct {
	records []models.MovieRecord
	err     error
}

type verified struct {
	token string
	user  *models.User
	err   error
}

// moviesFetchedMsg is the constructor for [MsgMoviesFetched]
func moviesFetchedMsg(records []models.MovieRecord, err error) Msg {
	return Msg{kind: MsgMoviesFetched, data: moviesFetched{records, err}}
}

// verifiedMsg is the constructor for [MsgVerified]
func verifiedMsg(token string, user *models.User, err error) Msg {
	return Msg{kind: MsgVerified, data: verified{token, user, err}}
}

// authDoneMsg is the constructor for [MsgAuthDone]
func authDoneMsg(o session.Outcome) Msg {
	return Msg{kind: MsgAuthDone, data: o}
}

// redirectMsg is the constructor for [MsgRedirect]
func redirectMsg() Msg {
	return Msg{kind: MsgRedirect}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]; seq identifies the toast.
func toastExpiredMsg(seq int) Msg {
	return Msg{kind: MsgToastExpired, data: seq}
}

// scrollFrameMsg is the constructor for [MsgScrollFrame]
func scrollFrameMsg() Msg {
	return Msg{kind: MsgScrollFrame}
}

const frameInterval = 16 * time.Millisecond

func tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return scrollFrameMsg() })
}
