package questiongen

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/ideaforge/internal/locale"
)

// Service always produces a question: it calls the Generator when one is
// configured and falls back to the canned locale question on any failure.
// Concurrent requests for the same session, module and kind share one
// Generator call.
type Service struct {
	gen     Generator
	timeout time.Duration
	group   singleflight.Group
}

// NewService wraps gen. A nil gen serves canned questions only; those are
// not marked Degraded since nothing failed. timeout
// bounds each Generator call; zero leaves only the caller's deadline.
func NewService(gen Generator, timeout time.Duration) *Service {
	return &Service{gen: gen, timeout: timeout}
}

// Next returns the opening question for in.Module.
func (s *Service) Next(ctx context.Context, in Input) *Question {
	if s.gen == nil {
		return offline(locale.For(in.Locale).Question(in.Module))
	}
	q, err := s.do(ctx, key("question", in), func(ctx context.Context) (*Question, error) {
		return s.gen.Generate(ctx, in)
	})
	if err != nil {
		slog.WarnContext(ctx, "question generation failed, using canned question",
			"module", in.Module, "error", err)
		return canned(in, err)
	}
	return q
}

// FollowUp returns a narrower question for the same module.
func (s *Service) FollowUp(ctx context.Context, in FollowUpInput) *Question {
	if s.gen == nil {
		return offline(locale.For(in.Locale).FollowUp(in.Module))
	}
	q, err := s.do(ctx, key("follow-up", in.Input), func(ctx context.Context) (*Question, error) {
		return s.gen.FollowUp(ctx, in)
	})
	if err != nil {
		slog.WarnContext(ctx, "follow-up generation failed, using canned follow-up",
			"module", in.Module, "error", err)
		return cannedFollowUp(in, err)
	}
	return q
}

// do runs fn once per key among concurrent callers. The shared call is
// detached from any single caller's cancellation but keeps its deadline;
// each caller still stops waiting when its own ctx ends.
func (s *Service) do(ctx context.Context, k string, fn func(context.Context) (*Question, error)) (*Question, error) {
	ch := s.group.DoChan(k, func() (any, error) {
		callCtx := context.WithoutCancel(ctx)
		cancel := context.CancelFunc(func() {})
		if dl, ok := ctx.Deadline(); ok {
			callCtx, cancel = context.WithDeadline(callCtx, dl)
		}
		defer cancel()
		if s.timeout > 0 {
			var cancelTimeout context.CancelFunc
			callCtx, cancelTimeout = context.WithTimeout(callCtx, s.timeout)
			defer cancelTimeout()
		}
		return fn(callCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		q := *res.Val.(*Question)
		return &q, nil
	}
}

func key(kind string, in Input) string {
	return in.SessionID + "/" + kind + "/" + string(in.Module)
}

func canned(in Input, reason error) *Question {
	return &Question{
		Text:     locale.For(in.Locale).Question(in.Module),
		Degraded: true,
		Reason:   reason,
	}
}

func cannedFollowUp(in FollowUpInput, reason error) *Question {
	return &Question{
		Text:     locale.For(in.Locale).FollowUp(in.Module),
		Degraded: true,
		Reason:   reason,
	}
}

func offline(text string) *Question {
	return &Question{Text: text}
}
