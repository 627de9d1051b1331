// Package tui is the interactive terminal front end of a conversation.
package tui

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/ui/components"
)

// eventBuffer is the capacity of the hook-to-UI channel.
const eventBuffer = 64

// SessionFactory creates the session shown by the model, wired to hooks.
type SessionFactory func(hooks conversation.Hooks) *conversation.Session

// Model is the root Bubble Tea model of the chat.
type Model struct {
	session *conversation.Session
	events  chan tea.Msg

	transcript []conversation.Message
	progress   map[pipeline.ModuleID]pipeline.Progress
	status     conversation.Status
	result     *aggregate.CompletedIdea
	notice     string
	errMsg     string

	input       components.AnswerInput
	busy        bool
	quitConfirm bool
	width       int
	height      int
}

// NewModel builds the model and its session. The session starts when the
// program runs.
func NewModel(newSession SessionFactory) *Model {
	m := &Model{
		events:   make(chan tea.Msg, eventBuffer),
		progress: make(map[pipeline.ModuleID]pipeline.Progress),
		input:    components.NewAnswerInput("Type your answer and press Enter...", 2000),
		busy:     true,
	}
	m.session = newSession(m.hooks())
	m.status = m.session.Status()
	m.input.SetDisabled(true)
	return m
}

// hooks forward session notifications into the UI loop.
func (m *Model) hooks() conversation.Hooks {
	return conversation.Hooks{
		OnMessageAppended: func(msg conversation.Message) { m.events <- messageAppendedMsg{Message: msg} },
		OnProgressChanged: func(id pipeline.ModuleID, p pipeline.Progress) {
			m.events <- progressMsg{Module: id, Progress: p}
		},
		OnCompleted: func(idea *aggregate.CompletedIdea) { m.events <- completedMsg{Idea: idea} },
		OnCancelled: func() { m.events <- cancelledMsg{} },
		OnDegraded:  func(reason string) { m.events <- degradedMsg{Reason: reason} },
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.start(), m.waitForEvent(), m.input.Init())
}

func (m *Model) start() tea.Cmd {
	return func() tea.Msg {
		return startDoneMsg{Err: m.session.Start(context.Background())}
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *Model) submit(answer string) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{Err: m.session.Submit(context.Background(), answer)}
	}
}

func (m *Model) finishNow() tea.Cmd {
	return func() tea.Msg {
		m.session.ForceComplete(context.Background())
		return submitDoneMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case messageAppendedMsg:
		m.transcript = append(m.transcript, msg.Message)
		m.syncStatus()
		return m, m.waitForEvent()

	case progressMsg:
		m.progress[msg.Module] = msg.Progress
		return m, m.waitForEvent()

	case degradedMsg:
		m.notice = "Running without the AI backend (" + msg.Reason + "). Using built-in questions."
		return m, m.waitForEvent()

	case completedMsg:
		m.result = msg.Idea
		m.syncStatus()
		return m, m.waitForEvent()

	case cancelledMsg:
		m.syncStatus()
		return m, tea.Quit

	case startDoneMsg:
		m.syncStatus()
		return m, nil

	case submitDoneMsg:
		m.errMsg = ""
		var verr *conversation.ValidationError
		if errors.As(msg.Err, &verr) {
			m.errMsg = verr.Error()
		}
		m.syncStatus()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.session.Cancel()
		return m, tea.Quit
	}

	if m.status == conversation.Completed {
		switch key {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.quitConfirm {
		switch key {
		case "y", "Y":
			m.quitConfirm = false
			m.session.Cancel()
			return m, tea.Quit
		case "n", "N", "esc":
			m.quitConfirm = false
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.quitConfirm = true
		return m, nil
	case "ctrl+d":
		if m.status.Terminal() {
			return m, nil
		}
		m.busy = true
		m.input.SetDisabled(true)
		return m, m.finishNow()
	case "enter":
		if m.input.Disabled() {
			return m, nil
		}
		answer := m.input.Value()
		m.input.Reset()
		m.busy = true
		m.input.SetDisabled(true)
		return m, m.submit(answer)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// syncStatus reads the session status and enables the input only while an
// answer is awaited.
func (m *Model) syncStatus() {
	m.status = m.session.Status()
	m.busy = m.status != conversation.AwaitingAnswer
	m.input.SetDisabled(m.busy)
}

// Session returns the session driven by the model.
func (m *Model) Session() *conversation.Session {
	return m.session
}
