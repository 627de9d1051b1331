// Package app wires the conversation engine to its collaborators: the LLM
// provider, the fallback services and the idea store.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/analysis"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/llm"
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/logging"
	"github.com/abhisek/ideaforge/internal/questiongen"
	"github.com/abhisek/ideaforge/internal/store"
)

// saveTimeout bounds persisting one completed idea.
const saveTimeout = 10 * time.Second

// Options configures an App.
type Options struct {
	// Provider backs question generation, analysis and narrative
	// synthesis. Nil runs fully offline on canned questions and the text
	// heuristic.
	Provider llm.Provider

	// Ideas stores completed ideas. Nil disables persistence.
	Ideas store.IdeaRepo

	Session   conversation.Config
	Scheduler conversation.Scheduler

	// AggregateOptions are passed to the aggregator, e.g. a seeded RNG.
	AggregateOptions []aggregate.Option
}

// App creates sessions and persists their results.
type App struct {
	questions  *questiongen.Service
	analyzer   *analysis.Service
	aggregator *aggregate.Aggregator
	ideas      store.IdeaRepo
	cfg        conversation.Config
	scheduler  conversation.Scheduler
	registry   *Registry
	offline    bool
}

// New builds an App from opts.
func New(opts Options) *App {
	var (
		gen      questiongen.Generator
		analyzer analysis.Analyzer
		narrator aggregate.Narrator
	)
	if opts.Provider != nil {
		gen = questiongen.New(opts.Provider, questiongen.DefaultConfig())
		analyzer = analysis.NewLLMAnalyzer(opts.Provider, analysis.DefaultLLMAnalyzerConfig())
		narrator = aggregate.NewLLMNarrator(opts.Provider)
	}

	cfg := opts.Session
	if cfg == (conversation.Config{}) {
		cfg = conversation.DefaultConfig()
	}
	aggOpts := append([]aggregate.Option{aggregate.WithTimeout(cfg.CallTimeout)}, opts.AggregateOptions...)

	return &App{
		questions:  questiongen.NewService(gen, cfg.CallTimeout),
		analyzer:   analysis.NewService(analyzer, cfg.CallTimeout),
		aggregator: aggregate.New(narrator, aggOpts...),
		ideas:      opts.Ideas,
		cfg:        cfg,
		scheduler:  opts.Scheduler,
		registry:   NewRegistry(),
		offline:    opts.Provider == nil,
	}
}

// Offline reports whether the App runs without an LLM provider.
func (a *App) Offline() bool {
	return a.offline
}

// Ideas returns the idea store, or nil when persistence is disabled.
func (a *App) Ideas() store.IdeaRepo {
	return a.ideas
}

// Registry returns the live sessions.
func (a *App) Registry() *Registry {
	return a.registry
}

// NewSession creates and registers a session for idea. An empty loc uses
// the configured locale. The session is saved and unregistered when it
// completes, and unregistered when it is cancelled; hooks run after that.
func (a *App) NewSession(idea string, loc locale.Locale, hooks conversation.Hooks) *conversation.Session {
	cfg := a.cfg
	if loc != "" {
		cfg.Locale = loc
	}

	var s *conversation.Session
	wrapped := hooks
	wrapped.OnCompleted = func(idea *aggregate.CompletedIdea) {
		a.save(s, idea)
		a.registry.Remove(s.ID())
		if hooks.OnCompleted != nil {
			hooks.OnCompleted(idea)
		}
	}
	wrapped.OnCancelled = func() {
		a.registry.Remove(s.ID())
		if hooks.OnCancelled != nil {
			hooks.OnCancelled()
		}
	}

	s = conversation.New(idea, cfg, conversation.Deps{
		Questions:  a.questions,
		Analyzer:   a.analyzer,
		Aggregator: a.aggregator,
		Scheduler:  a.scheduler,
		Hooks:      wrapped,
	})
	a.registry.Add(s)
	return s
}

// Session looks up a live session.
func (a *App) Session(id string) (*conversation.Session, error) {
	return a.registry.Get(id)
}

func (a *App) save(s *conversation.Session, idea *aggregate.CompletedIdea) {
	if a.ideas == nil || idea == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	ctx = logging.WithFields(ctx, logging.Fields{SessionID: s.ID(), Component: "app"})

	if err := a.ideas.SaveIdea(ctx, Record(idea, s.Snapshot())); err != nil {
		slog.ErrorContext(ctx, "failed to save completed idea", "idea_id", idea.ID, "error", err)
		return
	}
	slog.InfoContext(ctx, "completed idea saved", "idea_id", idea.ID)
}
