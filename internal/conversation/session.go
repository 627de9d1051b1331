package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/analysis"
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/logging"
	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/quality"
	"github.com/abhisek/ideaforge/internal/questiongen"
)

// step is the internal position inside a module, finer than Status.
type step int

const (
	stepIdle      step = iota // module waiting for its question
	stepAsking                // question call outstanding
	stepAwaiting              // question shown, answer accepted
	stepAnalyzing             // analysis call outstanding
	stepFollowUp              // follow-up call outstanding
	stepAdvancing             // acknowledged, advance scheduled
	stepDone
)

// Deps are the collaborators of a Session. Nil fields get working
// defaults: canned questions, heuristic analysis, fallback narrative and a
// real timer.
type Deps struct {
	Questions  QuestionSource
	Analyzer   AnswerAnalyzer
	Aggregator Aggregator
	Scheduler  Scheduler
	Hooks      Hooks

	Now   func() time.Time
	NewID func() string
}

// Session is one idea-refinement conversation. All state is owned by the
// session and changed only through its methods, which are safe for
// concurrent use. External calls run with the lock released; each one is
// tagged with a generation number and its result is dropped when the
// session has moved on or ended in the meantime.
type Session struct {
	id   string
	idea string
	cfg  Config

	questions  QuestionSource
	analyzer   AnswerAnalyzer
	aggregator Aggregator
	scheduler  Scheduler
	hooks      Hooks
	now        func() time.Time
	newID      func() string

	// ctx is cancelled when the session reaches a terminal state so that
	// outstanding calls stop early.
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	started      bool
	status       Status
	step         step
	gen          uint64
	cursor       pipeline.Cursor
	answers      map[pipeline.ModuleID]string
	progress     map[pipeline.ModuleID]pipeline.Progress
	followUps    map[pipeline.ModuleID]int
	transcript   []Message
	context      strings.Builder
	asked        []string
	lastQuestion string
	degraded     bool
	asking       chan struct{} // closed when the outstanding question lands
	finished     chan struct{} // closed once result is set
	result       *aggregate.CompletedIdea

	// pending hook deliveries, drained in order by whoever holds hookMu.
	pending []func()
	hookMu  sync.Mutex
}

// New creates a session for idea. Call Start to post the welcome and the
// first question.
func New(idea string, cfg Config, deps Deps) *Session {
	if cfg.Locale == "" {
		cfg.Locale = locale.Default
	}
	if deps.Questions == nil {
		deps.Questions = questiongen.NewService(nil, 0)
	}
	if deps.Analyzer == nil {
		deps.Analyzer = analysis.NewService(nil, 0)
	}
	if deps.Aggregator == nil {
		deps.Aggregator = aggregate.New(nil)
	}
	if deps.Scheduler == nil {
		deps.Scheduler = TimerScheduler{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	s := &Session{
		id:         deps.NewID(),
		idea:       strings.TrimSpace(idea),
		cfg:        cfg,
		questions:  deps.Questions,
		analyzer:   deps.Analyzer,
		aggregator: deps.Aggregator,
		scheduler:  deps.Scheduler,
		hooks:      deps.Hooks,
		now:        deps.Now,
		newID:      deps.NewID,
		status:     Active,
		answers:    make(map[pipeline.ModuleID]string),
		progress:   make(map[pipeline.ModuleID]pipeline.Progress),
		followUps:  make(map[pipeline.ModuleID]int),
		finished:   make(chan struct{}),
	}
	s.ctx, s.cancel = context.WithCancel(logging.WithFields(context.Background(), logging.Fields{
		SessionID: s.id,
		Component: "conversation",
	}))
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Result returns the CompletedIdea, or nil until aggregation finished.
func (s *Session) Result() *aggregate.CompletedIdea {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Start posts the welcome message and asks the first question. Calling it
// again is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started || s.status.Terminal() {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.appendLocked(RoleAssistant, "", s.welcome())
	s.unlock()

	slog.InfoContext(s.logContext(ctx), "conversation started", "modules", pipeline.Len())
	return s.RequestQuestion(ctx)
}

// RequestQuestion asks the current module's question if it has not been
// asked yet. When the question is already being generated it waits for
// that call instead of issuing another, so at most one question message is
// appended per request. It returns an error only if ctx ends while
// waiting.
func (s *Session) RequestQuestion(ctx context.Context) error {
	s.mu.Lock()
	if s.step == stepAsking && s.asking != nil {
		wait := s.asking
		s.mu.Unlock()
		select {
		case <-wait:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if !s.started || s.status != Active || s.step != stepIdle {
		st := s.status
		s.mu.Unlock()
		slog.DebugContext(s.logContext(ctx), "question request ignored", "status", st)
		return nil
	}
	s.ask(ctx)
	return nil
}

// Submit records an answer for the module currently awaiting one, scores
// it and either asks a follow-up or acknowledges the module and schedules
// the advance. It returns a *ValidationError for empty or too-short
// answers. An answer that arrives when no question is awaiting one is
// ignored and nil is returned.
func (s *Session) Submit(ctx context.Context, answer string) error {
	answer = strings.TrimSpace(answer)

	s.mu.Lock()
	if s.status != AwaitingAnswer {
		st := s.status
		s.mu.Unlock()
		slog.DebugContext(s.logContext(ctx), "answer ignored, no question awaiting one", "status", st)
		return nil
	}
	if err := s.validate(answer); err != nil {
		s.mu.Unlock()
		return err
	}

	m, _ := s.cursor.Current()
	s.appendLocked(RoleUser, m, answer)
	if prev := s.answers[m]; prev != "" {
		s.answers[m] = prev + "\n" + answer
	} else {
		s.answers[m] = answer
	}
	fmt.Fprintf(&s.context, "Q: %s\nA: %s\n", s.lastQuestion, answer)
	s.status = Active
	s.step = stepAnalyzing
	tag := s.bump()
	in := analysis.Input{
		Answer:       s.answers[m],
		Module:       m,
		OriginalIdea: s.idea,
		Context:      s.context.String(),
		Locale:       s.cfg.Locale,
	}
	s.unlock()

	callCtx, cancel := s.callContext(ctx, m)
	res := s.analyzer.Analyze(callCtx, in)
	cancel()

	s.mu.Lock()
	if s.stale(tag) {
		s.unlock()
		slog.DebugContext(s.logContext(ctx), "analysis result discarded", "module", m)
		return nil
	}
	res.Completeness = pipeline.ClampCompleteness(res.Completeness)
	s.progress[m] = res.Progress
	if h := s.hooks.OnProgressChanged; h != nil {
		p := res.Progress
		s.pending = append(s.pending, func() { h(m, p) })
	}

	cat := locale.For(s.cfg.Locale)
	switch {
	case res.Degraded:
		s.noteDegraded(res.Reason)
		s.appendLocked(RoleAssistant, m, cat.NeutralAck)
	case res.NeedsMore && s.followUpAllowed(m):
		s.followUps[m]++
		s.step = stepFollowUp
		tag = s.bump()
		fin := questiongen.FollowUpInput{
			Input:    s.questionInput(m),
			Answer:   s.answers[m],
			Insights: res.Insights,
		}
		s.unlock()
		s.followUp(ctx, m, tag, fin)
		return nil
	default:
		s.appendLocked(RoleAssistant, m, fmt.Sprintf(cat.ModuleDone, cat.ModuleName(m)))
	}

	s.step = stepAdvancing
	tag = s.bump()
	s.unlock()

	slog.InfoContext(s.logContext(ctx), "module done", "module", m,
		"completeness", res.Completeness, "degraded", res.Degraded)
	s.scheduler.AfterFunc(s.cfg.AdvanceDelay, func() { s.advance(tag) })
	return nil
}

// Cancel ends the session. Outstanding results are dropped and no further
// messages are appended. Cancelling a finished session is a no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.status.Terminal() {
		s.mu.Unlock()
		return
	}
	s.status = Cancelled
	s.step = stepDone
	s.bump()
	if h := s.hooks.OnCancelled; h != nil {
		s.pending = append(s.pending, h)
	}
	s.unlock()
	s.cancel()

	slog.InfoContext(s.ctx, "conversation cancelled")
}

// ForceComplete skips the remaining modules and aggregates what was
// collected. On an already completed session it returns the existing
// result, waiting for aggregation if needed; on a cancelled one it returns
// nil.
func (s *Session) ForceComplete(ctx context.Context) *aggregate.CompletedIdea {
	s.mu.Lock()
	switch s.status {
	case Cancelled:
		s.mu.Unlock()
		return nil
	case Completed:
		fin := s.finished
		s.mu.Unlock()
		select {
		case <-fin:
			return s.Result()
		case <-ctx.Done():
			return nil
		}
	}
	s.started = true
	s.cursor.Exhaust()
	return s.complete(ctx)
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, _ := s.cursor.Current()
	return Snapshot{
		ID:           s.id,
		OriginalIdea: s.idea,
		Locale:       s.cfg.Locale,
		Status:       s.status,
		ModuleIndex:  s.cursor.Index(),
		Module:       m,
		Answers:      maps.Clone(s.answers),
		Progress:     maps.Clone(s.progress),
		Transcript:   append([]Message(nil), s.transcript...),
		Context:      s.context.String(),
	}
}

// ask issues the question call for the current module. It is called with
// s.mu held and returns with it released.
func (s *Session) ask(ctx context.Context) {
	m, _ := s.cursor.Current()
	s.step = stepAsking
	tag := s.bump()
	done := make(chan struct{})
	s.asking = done
	in := s.questionInput(m)
	s.unlock()

	callCtx, cancel := s.callContext(ctx, m)
	q := s.questions.Next(callCtx, in)
	cancel()

	s.mu.Lock()
	if s.asking == done {
		s.asking = nil
	}
	close(done)
	if s.stale(tag) {
		s.unlock()
		slog.DebugContext(s.logContext(ctx), "stale question discarded", "module", m)
		return
	}
	if q.Degraded {
		s.noteDegraded(q.Reason)
		s.appendLocked(RoleAssistant, m, locale.For(s.cfg.Locale).Apology)
	}
	s.askedLocked(m, q)
	s.unlock()
}

func (s *Session) followUp(ctx context.Context, m pipeline.ModuleID, tag uint64, in questiongen.FollowUpInput) {
	callCtx, cancel := s.callContext(ctx, m)
	q := s.questions.FollowUp(callCtx, in)
	cancel()

	s.mu.Lock()
	if s.stale(tag) {
		s.unlock()
		slog.DebugContext(s.logContext(ctx), "stale follow-up discarded", "module", m)
		return
	}
	if q.Degraded {
		s.noteDegraded(q.Reason)
	}
	s.askedLocked(m, q)
	s.unlock()
}

// askedLocked appends a question message and waits for the answer.
func (s *Session) askedLocked(m pipeline.ModuleID, q *questiongen.Question) {
	content := q.Text
	if tip := strings.TrimSpace(q.EducationalTip); tip != "" {
		content += "\n\n" + locale.For(s.cfg.Locale).TipPrefix + " " + tip
	}
	s.appendLocked(RoleAssistant, m, content)
	s.lastQuestion = q.Text
	s.asked = append(s.asked, q.Text)
	s.status = AwaitingAnswer
	s.step = stepAwaiting
}

// advance is the deferred move to the next module.
func (s *Session) advance(tag uint64) {
	s.mu.Lock()
	if s.stale(tag) {
		s.unlock()
		return
	}
	if !s.cursor.Advance() {
		s.complete(s.ctx)
		return
	}
	s.status = Active
	s.step = stepIdle
	s.ask(s.ctx)
}

// complete closes the conversation and aggregates it. It is called with
// s.mu held and returns with it released.
func (s *Session) complete(ctx context.Context) *aggregate.CompletedIdea {
	s.appendLocked(RoleAssistant, "", locale.For(s.cfg.Locale).Celebration)
	s.status = Completed
	s.step = stepDone
	s.bump()
	in := aggregate.Input{
		OriginalIdea: s.idea,
		Answers:      maps.Clone(s.answers),
		Progress:     maps.Clone(s.progress),
		Locale:       s.cfg.Locale,
	}
	s.unlock()

	callCtx, cancel := s.callContext(ctx, "")
	idea := s.aggregator.Aggregate(callCtx, in)
	cancel()

	s.mu.Lock()
	s.result = idea
	close(s.finished)
	if h := s.hooks.OnCompleted; h != nil {
		s.pending = append(s.pending, func() { h(idea) })
	}
	s.unlock()
	s.cancel()

	slog.InfoContext(s.logContext(ctx), "conversation completed",
		"overall_completeness", idea.OverallCompleteness, "grade", idea.Grade)
	return idea
}

func (s *Session) validate(answer string) error {
	if answer == "" {
		return &ValidationError{Err: ErrEmptyAnswer, MinLength: s.cfg.MinAnswerLength}
	}
	if utf8.RuneCountInString(answer) < s.cfg.MinAnswerLength {
		return &ValidationError{Err: ErrAnswerTooShort, MinLength: s.cfg.MinAnswerLength}
	}
	return nil
}

func (s *Session) followUpAllowed(m pipeline.ModuleID) bool {
	return s.cfg.MaxFollowUps <= 0 || s.followUps[m] < s.cfg.MaxFollowUps
}

func (s *Session) questionInput(m pipeline.ModuleID) questiongen.Input {
	return questiongen.Input{
		SessionID:      s.id,
		Module:         m,
		OriginalIdea:   s.idea,
		Context:        s.context.String(),
		Locale:         s.cfg.Locale,
		PriorQuestions: append([]string(nil), s.asked...),
	}
}

func (s *Session) welcome() string {
	cat := locale.For(s.cfg.Locale)
	text := fmt.Sprintf(cat.Welcome, s.idea, pipeline.Len())

	r := quality.Score(s.idea, s.cfg.Locale)
	if !r.NeedsExpansion || len(r.Suggestions) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(cat.ExpandIdea)
	for _, sug := range r.Suggestions {
		b.WriteString("\n- ")
		b.WriteString(sug)
	}
	return b.String()
}

// appendLocked appends a message and queues its notification.
func (s *Session) appendLocked(role Role, m pipeline.ModuleID, content string) {
	msg := Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Module:    m,
		CreatedAt: s.now(),
	}
	s.transcript = append(s.transcript, msg)
	if h := s.hooks.OnMessageAppended; h != nil {
		s.pending = append(s.pending, func() { h(msg) })
	}
}

func (s *Session) noteDegraded(reason error) {
	if s.degraded {
		return
	}
	s.degraded = true
	if h := s.hooks.OnDegraded; h != nil {
		msg := "generation service unavailable"
		if reason != nil {
			msg = reason.Error()
		}
		s.pending = append(s.pending, func() { h(msg) })
	}
}

func (s *Session) bump() uint64 {
	s.gen++
	return s.gen
}

// stale reports whether a result tagged with tag must be dropped.
func (s *Session) stale(tag uint64) bool {
	return tag != s.gen || s.status.Terminal()
}

// unlock releases s.mu and delivers queued hooks in order.
func (s *Session) unlock() {
	s.mu.Unlock()

	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	for {
		s.mu.Lock()
		fns := s.pending
		s.pending = nil
		s.mu.Unlock()
		if len(fns) == 0 {
			return
		}
		for _, f := range fns {
			f()
		}
	}
}

// callContext bounds an external call by the session's lifetime and
// CallTimeout. The caller's cancellation is not inherited: a caller going
// away is not a backend failure and must not trigger the fallbacks.
func (s *Session) callContext(ctx context.Context, m pipeline.ModuleID) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(s.logContext(ctx)))
	stop := context.AfterFunc(s.ctx, cancel)
	if s.cfg.CallTimeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, s.cfg.CallTimeout)
		inner := cancel
		cancel = func() { cancelTimeout(); inner() }
	}
	if m != "" {
		ctx = logging.WithFields(ctx, logging.Fields{Module: string(m)})
	}
	return ctx, func() {
		stop()
		cancel()
	}
}

func (s *Session) logContext(ctx context.Context) context.Context {
	return logging.WithFields(ctx, logging.Fields{SessionID: s.id, Component: "conversation"})
}
