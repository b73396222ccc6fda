package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/tasks"
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
	MsgAuthResult MsgKind = iota
	MsgRatingsResult
	MsgAddResult
	MsgFetchResult
	MsgMutationResult
	MsgSessionEnded
	MsgDialogDone
)

// authResultMsg is the constructor for [MsgAuthResult]
func authResultMsg(res tasks.Result[string]) Msg {
	return Msg{kind: MsgAuthResult, data: res}
}

// ratingsResultMsg is the constructor for [MsgRatingsResult]
func ratingsResultMsg(res tasks.Result[[]models.RatingSummary]) Msg {
	return Msg{kind: MsgRatingsResult, data: res}
}

// addResultMsg is the constructor for [MsgAddResult]
func addResultMsg(res tasks.Result[struct{}]) Msg {
	return Msg{kind: MsgAddResult, data: res}
}

// fetchResultMsg is the constructor for [MsgFetchResult]
func fetchResultMsg(res tasks.Result[[]models.MovieRecord]) Msg {
	return Msg{kind: MsgFetchResult, data: res}
}

// mutationResultMsg is the constructor for [MsgMutationResult]
func mutationResultMsg(res tasks.Result[[]models.MovieRecord]) Msg {
	return Msg{kind: MsgMutationResult, data: res}
}

// sessionEndedMsg is the constructor for [MsgSessionEnded]
func sessionEndedMsg(reason session.Reason) Msg {
	return Msg{kind: MsgSessionEnded, data: reason}
}

// dialogDoneMsg is the constructor for [MsgDialogDone]
func dialogDoneMsg(result dialogResult) Msg {
	return Msg{kind: MsgDialogDone, data: result}
}

// run turns a pending call into a [tea.Cmd]. The call runs off the event loop and its result is
// wrapped by wrap.
func run[T any](ctx context.Context, call *tasks.Call[T], wrap func(tasks.Result[T]) Msg) tea.Cmd {
	if call == nil {
		return nil
	}
	return func() tea.Msg {
		return wrap(call.Run(ctx))
	}
}
