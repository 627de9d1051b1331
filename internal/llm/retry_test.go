package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var (
	down     = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}}
	garbled  = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"completeness":`), Err: errors.New("unexpected EOF")}}
	cutShort = MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"insights":"The`)}}
	limited  = MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}
	ok       = MockResponse{Content: json.RawMessage(`{"completeness":80}`)}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		script    []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", 3, []MockResponse{ok}, false, 1},
		{"transient then success", 3, []MockResponse{down, ok}, false, 2},
		{"rate limit then success", 3, []MockResponse{limited, ok}, false, 2},
		{"gives up after max attempts", 3, []MockResponse{down, down, down, ok}, true, 3},
		{"truncation is final", 3, []MockResponse{cutShort, ok}, true, 1},
		{"schema violation retried once", 3, []MockResponse{garbled, garbled, ok}, true, 2},
		{"schema violation then success", 3, []MockResponse{garbled, ok}, false, 2},
		{"zero attempts means one", 0, []MockResponse{down, ok}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			p := WithRetry(mock, fastRetry(tt.attempts))

			resp, err := p.Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(resp.Content) != `{"completeness":80}` {
				t.Errorf("unexpected content: %s", resp.Content)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_CancelledContextStopsBackoff(t *testing.T) {
	mock := NewMockProvider(down, down, ok)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_BackoffIsCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 400 * time.Millisecond, Multiplier: 2}}

	for attempt := 0; attempt < 6; attempt++ {
		d := r.backoff(attempt, errors.New("x"))
		if d > 480*time.Millisecond {
			t.Fatalf("attempt %d: backoff %s exceeds cap plus jitter", attempt, d)
		}
	}
	if d := r.backoff(0, &ErrRateLimit{RetryAfter: 3 * time.Second}); d != 3*time.Second {
		t.Fatalf("expected Retry-After to win, got %s", d)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry(2))
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
