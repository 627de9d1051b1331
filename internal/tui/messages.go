package tui

import (
	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/pipeline"
)

// messageAppendedMsg carries a new transcript message from the session.
type messageAppendedMsg struct {
	Message conversation.Message
}

// progressMsg is sent when a module's analysis lands.
type progressMsg struct {
	Module   pipeline.ModuleID
	Progress pipeline.Progress
}

// completedMsg is sent once the idea has been aggregated.
type completedMsg struct {
	Idea *aggregate.CompletedIdea
}

// cancelledMsg is sent when the session was cancelled.
type cancelledMsg struct{}

// degradedMsg is the one-time notice that fallbacks are in use.
type degradedMsg struct {
	Reason string
}

// submitDoneMsg is returned by the submit command.
type submitDoneMsg struct {
	Err error
}

// startDoneMsg is returned once the first question was asked.
type startDoneMsg struct {
	Err error
}
