package conversation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/analysis"
	"github.com/abhisek/ideaforge/internal/llm"
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/questiongen"
)

// goodAnswers each score at least the advance threshold under the text
// heuristic.
var goodAnswers = []string{
	"Commuters lose twenty minutes every morning circling for parking, a daily problem.",
	"Downtown office workers who drive in daily and pay for monthly garage passes.",
	"The value is a guaranteed slot reserved from the phone before leaving home.",
	"A per-minute fee charged to each customer who reserves a garage slot",
	"Exclusive partnerships with the three biggest downtown garage operators.",
}

// fakeQuestions answers every request with a fixed question per module.
// A module with a gate blocks until the gate is closed.
type fakeQuestions struct {
	mu        sync.Mutex
	next      []questiongen.Input
	followUps []questiongen.FollowUpInput
	gates     map[pipeline.ModuleID]chan struct{}
	entered   chan pipeline.ModuleID
	tip       string
}

func (f *fakeQuestions) Next(ctx context.Context, in questiongen.Input) *questiongen.Question {
	f.mu.Lock()
	f.next = append(f.next, in)
	gate := f.gates[in.Module]
	f.mu.Unlock()

	if gate != nil {
		if f.entered != nil {
			f.entered <- in.Module
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return &questiongen.Question{Text: "canned", Degraded: true, Reason: ctx.Err()}
		}
	}
	return &questiongen.Question{Text: "Tell me about the " + string(in.Module), EducationalTip: f.tip}
}

func (f *fakeQuestions) FollowUp(_ context.Context, in questiongen.FollowUpInput) *questiongen.Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followUps = append(f.followUps, in)
	return &questiongen.Question{Text: "Can you say more about the " + string(in.Module) + "?"}
}

func (f *fakeQuestions) nextCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.next)
}

func (f *fakeQuestions) followUpCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.followUps)
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(context.Context, analysis.Input) (pipeline.Progress, error) {
	return pipeline.Progress{}, errors.New("analysis backend down")
}

// ctxAnalyzer scores with the heuristic unless its ctx has ended.
type ctxAnalyzer struct{}

func (ctxAnalyzer) Analyze(ctx context.Context, in analysis.Input) (pipeline.Progress, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Progress{}, err
	}
	return analysis.Heuristic(in), nil
}

// gatedAnalyzer blocks until release is closed.
type gatedAnalyzer struct {
	entered chan struct{}
	release chan struct{}
}

func (g gatedAnalyzer) Analyze(ctx context.Context, in analysis.Input) analysis.Result {
	g.entered <- struct{}{}
	<-g.release
	return analysis.Result{Progress: analysis.Heuristic(in)}
}

type recorder struct {
	mu        sync.Mutex
	messages  []Message
	progress  map[pipeline.ModuleID]pipeline.Progress
	completed []*aggregate.CompletedIdea
	cancelled int
	degraded  []string
}

func (r *recorder) hooks() Hooks {
	r.progress = make(map[pipeline.ModuleID]pipeline.Progress)
	return Hooks{
		OnMessageAppended: func(m Message) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.messages = append(r.messages, m)
		},
		OnProgressChanged: func(id pipeline.ModuleID, p pipeline.Progress) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.progress[id] = p
		},
		OnCompleted: func(idea *aggregate.CompletedIdea) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completed = append(r.completed, idea)
		},
		OnCancelled: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.cancelled++
		},
		OnDegraded: func(reason string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.degraded = append(r.degraded, reason)
		},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Locale = locale.English
	cfg.CallTimeout = 2 * time.Second
	return cfg
}

func newTestSession(t *testing.T, cfg Config, deps Deps) *Session {
	t.Helper()
	if deps.Aggregator == nil {
		deps.Aggregator = aggregate.New(nil, aggregate.WithRand(rand.New(rand.NewPCG(7, 7))))
	}
	if deps.Scheduler == nil {
		deps.Scheduler = ImmediateScheduler{}
	}
	n := 0
	deps.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	s := New("A parking reservation app for downtown commuters", cfg, deps)
	t.Cleanup(s.Cancel)
	return s
}

func assistantMessages(msgs []Message, m pipeline.ModuleID) []Message {
	var out []Message
	for _, msg := range msgs {
		if msg.Role == RoleAssistant && msg.Module == m {
			out = append(out, msg)
		}
	}
	return out
}

func TestSession_StartPostsWelcomeThenQuestion(t *testing.T) {
	fq := &fakeQuestions{}
	s := newTestSession(t, testConfig(), Deps{Questions: fq})

	require.NoError(t, s.Start(context.Background()))

	snap := s.Snapshot()
	require.Len(t, snap.Transcript, 2)
	assert.Contains(t, snap.Transcript[0].Content, "A parking reservation app for downtown commuters")
	assert.Empty(t, snap.Transcript[0].Module)
	assert.Equal(t, "Tell me about the problem_definition", snap.Transcript[1].Content)
	assert.Equal(t, pipeline.ProblemDefinition, snap.Transcript[1].Module)
	assert.Equal(t, AwaitingAnswer, snap.Status)
	assert.Equal(t, 0, snap.ModuleIndex)

	// A second Start does nothing.
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.Snapshot().Transcript, 2)
	assert.Equal(t, 1, fq.nextCalls())
}

func TestSession_WelcomeSuggestsExpandingThinIdea(t *testing.T) {
	s := New("an app", testConfig(), Deps{Questions: &fakeQuestions{}, Scheduler: ImmediateScheduler{}})
	t.Cleanup(s.Cancel)
	require.NoError(t, s.Start(context.Background()))

	welcome := s.Snapshot().Transcript[0].Content
	assert.Contains(t, welcome, locale.For(locale.English).ExpandIdea)
	assert.Contains(t, welcome, "\n- ")
}

func TestSession_GoodAnswersCompleteWithoutFollowUps(t *testing.T) {
	rec := &recorder{}
	fq := &fakeQuestions{}
	s := newTestSession(t, testConfig(), Deps{Questions: fq, Hooks: rec.hooks()})
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	lastIndex := 0
	for i, answer := range goodAnswers {
		require.Equal(t, AwaitingAnswer, s.Status(), "before answer %d", i)
		require.NoError(t, s.Submit(ctx, answer))

		idx := s.Snapshot().ModuleIndex
		assert.GreaterOrEqual(t, idx, lastIndex)
		lastIndex = idx
	}

	snap := s.Snapshot()
	assert.Equal(t, Completed, snap.Status)
	assert.Equal(t, pipeline.Len(), snap.ModuleIndex)
	assert.Zero(t, fq.followUpCalls())
	// welcome + (question, answer, ack) per module + celebration
	assert.Len(t, snap.Transcript, 2+3*pipeline.Len())
	assert.Equal(t, locale.For(locale.English).Celebration, snap.Transcript[len(snap.Transcript)-1].Content)

	for i, m := range pipeline.Modules() {
		assert.Equal(t, goodAnswers[i], snap.Answers[m])
		assert.GreaterOrEqual(t, snap.Progress[m].Completeness, analysis.AdvanceThreshold)
		assert.False(t, snap.Progress[m].NeedsMore)
	}

	idea := s.Result()
	require.NotNil(t, idea)
	assert.GreaterOrEqual(t, idea.OverallCompleteness, analysis.AdvanceThreshold)
	assert.LessOrEqual(t, idea.OverallCompleteness, 100)
	assert.NotEmpty(t, idea.Grade)
	assert.NotEmpty(t, idea.Narrative)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, snap.Transcript, rec.messages)
	assert.Len(t, rec.progress, pipeline.Len())
	require.Len(t, rec.completed, 1)
	assert.Same(t, idea, rec.completed[0])
	assert.Empty(t, rec.degraded)
}

func TestSession_ContextCarriesPriorAnswers(t *testing.T) {
	fq := &fakeQuestions{}
	s := newTestSession(t, testConfig(), Deps{Questions: fq})
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Submit(ctx, goodAnswers[0]))

	fq.mu.Lock()
	defer fq.mu.Unlock()
	require.Len(t, fq.next, 2)
	second := fq.next[1]
	assert.Equal(t, pipeline.TargetCustomer, second.Module)
	assert.Contains(t, second.Context, "Q: Tell me about the problem_definition\nA: "+goodAnswers[0])
	assert.Equal(t, []string{"Tell me about the problem_definition"}, second.PriorQuestions)
	assert.Equal(t, s.ID(), second.SessionID)
}

func TestSession_ShortAnswerAsksFollowUpAndStays(t *testing.T) {
	fq := &fakeQuestions{}
	sched := &ManualScheduler{}
	s := newTestSession(t, testConfig(), Deps{Questions: fq, Scheduler: sched})
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Submit(ctx, "parking bad"))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.ModuleIndex)
	assert.Equal(t, AwaitingAnswer, snap.Status)
	assert.True(t, snap.Progress[pipeline.ProblemDefinition].NeedsMore)
	assert.Less(t, snap.Progress[pipeline.ProblemDefinition].Completeness, analysis.AdvanceThreshold)
	assert.Zero(t, sched.Pending())

	last := snap.Transcript[len(snap.Transcript)-1]
	assert.Equal(t, RoleAssistant, last.Role)
	assert.Equal(t, pipeline.ProblemDefinition, last.Module)
	assert.Equal(t, "Can you say more about the problem_definition?", last.Content)
	require.Equal(t, 1, fq.followUpCalls())
	assert.Equal(t, "parking bad", fq.followUps[0].Answer)
	assert.NotEmpty(t, fq.followUps[0].Insights)

	// The follow-up answer is scored together with the first one.
	require.NoError(t, s.Submit(ctx, goodAnswers[0]))
	snap = s.Snapshot()
	assert.Equal(t, "parking bad\n"+goodAnswers[0], snap.Answers[pipeline.ProblemDefinition])
	assert.False(t, snap.Progress[pipeline.ProblemDefinition].NeedsMore)
	assert.Equal(t, 0, snap.ModuleIndex, "advance is deferred")
	assert.Equal(t, Active, snap.Status)
	require.Equal(t, 1, sched.Pending())
	assert.Equal(t, []time.Duration{DefaultConfig().AdvanceDelay}, sched.Delays())

	assert.Equal(t, 1, sched.Fire())
	snap = s.Snapshot()
	assert.Equal(t, 1, snap.ModuleIndex)
	assert.Equal(t, AwaitingAnswer, snap.Status)
}

func TestSession_SubmitWhileAdvancingIsIgnored(t *testing.T) {
	sched := &ManualScheduler{}
	s := newTestSession(t, testConfig(), Deps{Questions: &fakeQuestions{}, Scheduler: sched})
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Submit(ctx, goodAnswers[0]))
	before := s.Snapshot()

	require.NoError(t, s.Submit(ctx, goodAnswers[1]))
	assert.Equal(t, before, s.Snapshot())
}

func TestSession_SubmitBeforeStartIsIgnored(t *testing.T) {
	s := newTestSession(t, testConfig(), Deps{Questions: &fakeQuestions{}})

	require.NoError(t, s.Submit(context.Background(), goodAnswers[0]))
	assert.Empty(t, s.Snapshot().Transcript)
	assert.Empty(t, s.Snapshot().Answers)
}

func TestSession_Validation(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   error
	}{
		{"empty", "", ErrEmptyAnswer},
		{"whitespace", "  \n\t", ErrEmptyAnswer},
		{"too short", "a", ErrAnswerTooShort},
		{"short multibyte", "ñ", ErrAnswerTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, testConfig(), Deps{Questions: &fakeQuestions{}})
			require.NoError(t, s.Start(context.Background()))
			before := s.Snapshot()

			err := s.Submit(context.Background(), tt.answer)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 2, verr.MinLength)

			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestSession_DuplicateQuestionRequestsAppendOnce(t *testing.T) {
	gate := make(chan struct{})
	fq := &fakeQuestions{
		gates:   map[pipeline.ModuleID]chan struct{}{pipeline.ProblemDefinition: gate},
		entered: make(chan pipeline.ModuleID, 1),
	}
	s := newTestSession(t, testConfig(), Deps{Questions: fq})
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Start(ctx))
	}()
	<-fq.entered

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.RequestQuestion(ctx))
		}()
	}
	close(gate)
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, assistantMessages(snap.Transcript, pipeline.ProblemDefinition), 1)
	assert.Equal(t, 1, fq.nextCalls())
	assert.Equal(t, AwaitingAnswer, snap.Status)
}

func TestSession_RequestQuestionWaitRespectsContext(t *testing.T) {
	gate := make(chan struct{})
	fq := &fakeQuestions{
		gates:   map[pipeline.ModuleID]chan struct{}{pipeline.ProblemDefinition: gate},
		entered: make(chan pipeline.ModuleID, 1),
	}
	s := newTestSession(t, testConfig(), Deps{Questions: fq})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(context.Background())
	}()
	<-fq.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.RequestQuestion(ctx), context.DeadlineExceeded)

	close(gate)
	<-done
}

func TestSession_StaleQuestionIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	fq := &fakeQuestions{
		gates:   map[pipeline.ModuleID]chan struct{}{pipeline.ProblemDefinition: gate},
		entered: make(chan pipeline.ModuleID, 1),
	}
	s := newTestSession(t, testConfig(), Deps{Questions: fq})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Start(ctx)
	}()
	<-fq.entered

	// Move on to module 1 while the module 0 question is still out.
	s.mu.Lock()
	s.cursor.Advance()
	s.step = stepIdle
	s.bump()
	s.mu.Unlock()
	require.NoError(t, s.RequestQuestion(ctx))

	close(gate)
	<-done

	snap := s.Snapshot()
	assert.Empty(t, assistantMessages(snap.Transcript, pipeline.ProblemDefinition))
	assert.Len(t, assistantMessages(snap.Transcript, pipeline.TargetCustomer), 1)
	assert.Equal(t, 1, snap.ModuleIndex)
	assert.Equal(t, AwaitingAnswer, snap.Status)
}

func TestSession_FailingBackendsStillComplete(t *testing.T) {
	rec := &recorder{}
	down := llm.NewMockProvider()
	deps := Deps{
		Questions:  questiongen.NewService(questiongen.New(down, questiongen.DefaultConfig()), time.Second),
		Analyzer:   analysis.NewService(failingAnalyzer{}, time.Second),
		Aggregator: aggregate.New(aggregate.NewLLMNarrator(down)),
		Hooks:      rec.hooks(),
	}
	s := newTestSession(t, testConfig(), deps)
	ctx := context.Background()
	cat := locale.For(locale.English)

	require.NoError(t, s.Start(ctx))
	submissions := 0
	for s.Status() == AwaitingAnswer {
		require.NoError(t, s.Submit(ctx, "no idea"))
		submissions++
		require.LessOrEqual(t, submissions, pipeline.Len())
	}

	assert.Equal(t, pipeline.Len(), submissions)
	snap := s.Snapshot()
	assert.Equal(t, Completed, snap.Status)

	for _, m := range pipeline.Modules() {
		msgs := assistantMessages(snap.Transcript, m)
		require.Len(t, msgs, 3, m)
		assert.Equal(t, cat.Apology, msgs[0].Content)
		assert.Equal(t, cat.Question(m), msgs[1].Content)
		assert.Equal(t, cat.NeutralAck, msgs[2].Content)

		// The heuristic score is kept even though the module advanced.
		p, ok := snap.Progress[m]
		require.True(t, ok)
		assert.Equal(t, analysis.Heuristic(analysis.Input{Answer: "no idea", Locale: locale.English}), p)
	}

	idea := s.Result()
	require.NotNil(t, idea)
	assert.True(t, idea.NarrativeDegraded)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.degraded, 1, "degraded notice fires once")
}

func TestSession_CallerCancellationIsNotABackendFailure(t *testing.T) {
	rec := &recorder{}
	fq := &fakeQuestions{}
	s := newTestSession(t, testConfig(), Deps{
		Questions: fq,
		Analyzer:  analysis.NewService(ctxAnalyzer{}, time.Second),
		Hooks:     rec.hooks(),
	})
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Submit(ctx, "parking bad"))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.ModuleIndex)
	assert.Equal(t, AwaitingAnswer, snap.Status)
	assert.True(t, snap.Progress[pipeline.ProblemDefinition].NeedsMore)
	assert.Equal(t, 1, fq.followUpCalls())

	last := snap.Transcript[len(snap.Transcript)-1]
	assert.Equal(t, "Can you say more about the problem_definition?", last.Content)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.degraded)
}

func TestSession_OfflineDefaultsAreNotDegraded(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, testConfig(), Deps{Hooks: rec.hooks()})
	ctx := context.Background()
	cat := locale.For(locale.English)

	require.NoError(t, s.Start(ctx))
	snap := s.Snapshot()
	require.Len(t, snap.Transcript, 2)
	assert.Equal(t, cat.Question(pipeline.ProblemDefinition), snap.Transcript[1].Content)
	assert.Equal(t, AwaitingAnswer, snap.Status)

	require.NoError(t, s.Submit(ctx, "parking bad"))
	snap = s.Snapshot()
	assert.Equal(t, 0, snap.ModuleIndex)
	assert.Equal(t, cat.FollowUp(pipeline.ProblemDefinition), snap.Transcript[len(snap.Transcript)-1].Content)

	for _, a := range goodAnswers {
		require.NoError(t, s.Submit(ctx, a))
	}
	assert.Equal(t, Completed, s.Status())
	for _, m := range s.Snapshot().Transcript {
		assert.NotEqual(t, cat.Apology, m.Content)
		assert.NotEqual(t, cat.NeutralAck, m.Content)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.degraded)
}

// The short scenario answers all score below the advance threshold under
// the text heuristic, so each one draws a follow-up on its own.
func TestSession_ShortScenarioAnswersDrawFollowUps(t *testing.T) {
	cases := []struct {
		module pipeline.ModuleID
		answer string
		score  int
	}{
		{pipeline.ProblemDefinition, "Users lose time finding parking", 70},
		{pipeline.TargetCustomer, "Urban commuters", 35},
		{pipeline.ValueProposition, "Real-time slot reservation", 25},
		{pipeline.RevenueModel, "Per-minute fee", 35},
		{pipeline.CompetitiveAdvantage, "Exclusive garage partnerships", 65},
	}
	for _, tc := range cases {
		t.Run(string(tc.module), func(t *testing.T) {
			p := analysis.Heuristic(analysis.Input{Answer: tc.answer, Module: tc.module, Locale: locale.English})
			assert.Equal(t, tc.score, p.Completeness)
			assert.True(t, p.NeedsMore)
		})
	}

	s := newTestSession(t, testConfig(), Deps{})
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Submit(context.Background(), cases[0].answer))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.ModuleIndex)
	assert.Equal(t, AwaitingAnswer, snap.Status)
	assert.Equal(t, locale.For(locale.English).FollowUp(pipeline.ProblemDefinition),
		snap.Transcript[len(snap.Transcript)-1].Content)
}

func TestSession_CancelIsIdempotent(t *testing.T) {
	rec := &recorder{}
	fq := &fakeQuestions{}
	s := newTestSession(t, testConfig(), Deps{Questions: fq, Hooks: rec.hooks()})
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	s.Cancel()
	after := s.Snapshot()
	assert.Equal(t, Cancelled, after.Status)

	s.Cancel()
	require.NoError(t, s.Submit(ctx, goodAnswers[0]))
	require.NoError(t, s.RequestQuestion(ctx))
	assert.Nil(t, s.ForceComplete(ctx))

	assert.Equal(t, after, s.Snapshot())
	assert.Equal(t, 1, fq.nextCalls())
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 1, rec.cancelled)
	assert.Empty(t, rec.completed)
}

func TestSession_CancelDropsInFlightAnalysis(t *testing.T) {
	ga := gatedAnalyzer{entered: make(chan struct{}), release: make(chan struct{})}
	sched := &ManualScheduler{}
	s := newTestSession(t, testConfig(), Deps{Questions: &fakeQuestions{}, Analyzer: ga, Scheduler: sched})
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	done := make(chan error, 1)
	go func() { done <- s.Submit(ctx, goodAnswers[0]) }()
	<-ga.entered
	s.Cancel()
	before := s.Snapshot()
	close(ga.release)
	require.NoError(t, <-done)

	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, s.Snapshot().Progress)
	assert.Zero(t, sched.Pending())
}

func TestSession_ForceComplete(t *testing.T) {
	sched := &ManualScheduler{}
	rec := &recorder{}
	s := newTestSession(t, testConfig(), Deps{Questions: &fakeQuestions{}, Scheduler: sched, Hooks: rec.hooks()})
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Submit(ctx, goodAnswers[0]))
	score := s.Snapshot().Progress[pipeline.ProblemDefinition].Completeness

	idea := s.ForceComplete(ctx)
	require.NotNil(t, idea)
	assert.Equal(t, aggregate.OverallCompleteness(map[pipeline.ModuleID]pipeline.Progress{
		pipeline.ProblemDefinition: {Completeness: score},
	}), idea.OverallCompleteness)
	assert.Equal(t, map[pipeline.ModuleID]string{pipeline.ProblemDefinition: goodAnswers[0]}, idea.ModulesByID)

	snap := s.Snapshot()
	assert.Equal(t, Completed, snap.Status)
	assert.Equal(t, pipeline.Len(), snap.ModuleIndex)

	// The pending advance is stale now.
	assert.Equal(t, 1, sched.Fire())
	assert.Equal(t, snap, s.Snapshot())

	assert.Same(t, idea, s.ForceComplete(ctx))
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.completed, 1)
}

func TestSession_MaxFollowUpsCapsPerModule(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFollowUps = 1
	fq := &fakeQuestions{}
	sched := &ManualScheduler{}
	s := newTestSession(t, cfg, Deps{Questions: fq, Scheduler: sched})
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Submit(ctx, "parking bad"))
	require.Equal(t, 1, fq.followUpCalls())
	require.NoError(t, s.Submit(ctx, "still bad"))

	assert.Equal(t, 1, fq.followUpCalls())
	assert.True(t, s.Snapshot().Progress[pipeline.ProblemDefinition].NeedsMore)
	assert.Equal(t, 1, sched.Pending())

	sched.Fire()
	assert.Equal(t, 1, s.Snapshot().ModuleIndex)
}

func TestSession_TipIsAppendedToQuestion(t *testing.T) {
	s := newTestSession(t, testConfig(), Deps{Questions: &fakeQuestions{tip: "Start from one customer."}})
	require.NoError(t, s.Start(context.Background()))

	q := s.Snapshot().Transcript[1]
	assert.Equal(t, "Tell me about the problem_definition\n\nTip: Start from one customer.", q.Content)
}

func TestSession_LLMBackedConversation(t *testing.T) {
	provider := llm.NewMockProvider()
	for i := range pipeline.Modules() {
		provider.AddResponse(llm.MockResponse{Content: []byte(fmt.Sprintf(`{"question":"Generated question %d?"}`, i))})
		provider.AddResponse(llm.MockResponse{Content: []byte(`{"completeness":90,"insights":"Clear.","needs_more":false}`)})
	}
	provider.AddResponse(llm.MockResponse{Content: []byte(`{"unified_narrative":"A reservation service for downtown parking."}`)})

	deps := Deps{
		Questions:  questiongen.NewService(questiongen.New(provider, questiongen.DefaultConfig()), 0),
		Analyzer:   analysis.NewService(analysis.NewLLMAnalyzer(provider, analysis.DefaultLLMAnalyzerConfig()), 0),
		Aggregator: aggregate.New(aggregate.NewLLMNarrator(provider)),
	}
	s := newTestSession(t, testConfig(), deps)
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	for _, a := range []string{"short", "answers", "are", "fine", "here"} {
		require.NoError(t, s.Submit(ctx, a))
	}

	idea := s.Result()
	require.NotNil(t, idea)
	assert.Equal(t, 90, idea.OverallCompleteness)
	assert.Equal(t, "A reservation service for downtown parking.", idea.Narrative)
	assert.False(t, idea.NarrativeDegraded)
	assert.Equal(t, 2*pipeline.Len()+1, provider.CallCount())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "awaiting_answer", AwaitingAnswer.String())
	assert.True(t, Cancelled.Terminal())
	assert.False(t, Active.Terminal())
	b, err := Completed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "completed", string(b))
}
