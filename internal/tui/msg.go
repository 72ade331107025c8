package tui

import "taskboard/internal/board"

// Msg is the sealed interface for all board messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgRender carries a reconciled view from the engine.
type MsgRender struct {
	View board.View
}

func (MsgRender) sealed() {}

// MsgNotice carries an outcome message from the engine.
type MsgNotice struct {
	Notice board.Notice
}

func (MsgNotice) sealed() {}

// MsgNoticeExpired clears the notice with the given sequence number.
type MsgNoticeExpired struct {
	Seq int
}

func (MsgNoticeExpired) sealed() {}

// MsgCloseModal is sent when a mutation succeeded and its form can close.
type MsgCloseModal struct{}

func (MsgCloseModal) sealed() {}

// MsgDispatched is sent when an intent has been fully handled.
type MsgDispatched struct {
	Err error
}

func (MsgDispatched) sealed() {}

// MsgSessionLost is sent when the session guard redirects to login.
type MsgSessionLost struct{}

func (MsgSessionLost) sealed() {}
