package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/geolens/internal/model"
)

type stubProvider struct {
	calls int
	err   error
}

func (s *stubProvider) Name() string                     { return "stub" }
func (s *stubProvider) IsAvailable(context.Context) bool { return true }

func (s *stubProvider) Complete(context.Context, CompletionRequest) (*CompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &CompletionResponse{Text: "ok"}, nil
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubProvider{err: errors.New("502 bad gateway")}
	b := WithBreaker(stub, BreakerConfig{Timeout: time.Minute, ConsecutiveFailures: 3}, nil)

	for i := 0; i < 3; i++ {
		if _, err := b.Complete(context.Background(), CompletionRequest{}); errors.Is(err, model.ErrServiceUnavailable) {
			t.Fatalf("breaker opened early on call %d", i)
		}
	}

	_, err := b.Complete(context.Background(), CompletionRequest{})
	if !errors.Is(err, model.ErrServiceUnavailable) {
		t.Fatalf("Expected ErrServiceUnavailable, got %v", err)
	}
	if stub.calls != 3 {
		t.Errorf("Expected open breaker to skip the provider, got %d calls", stub.calls)
	}
	if b.IsAvailable(context.Background()) {
		t.Error("Expected open breaker to report unavailable")
	}
}

func TestBreaker_RateLimitsDoNotTrip(t *testing.T) {
	stub := &stubProvider{err: &RateLimitError{Provider: "stub"}}
	b := WithBreaker(stub, BreakerConfig{Timeout: time.Minute, ConsecutiveFailures: 2}, nil)

	for i := 0; i < 5; i++ {
		_, err := b.Complete(context.Background(), CompletionRequest{})
		if _, ok := IsRateLimit(err); !ok {
			t.Fatalf("call %d: expected rate limit to pass through, got %v", i, err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("Expected closed breaker, got %s", b.State())
	}
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	b := WithBreaker(&stubProvider{}, DefaultBreakerConfig(), nil)
	resp, err := b.Complete(context.Background(), CompletionRequest{})
	if err != nil || resp.Text != "ok" {
		t.Fatalf("Unexpected result %v %v", resp, err)
	}
	if b.Name() != "stub" {
		t.Errorf("Expected wrapped name, got %s", b.Name())
	}
}
