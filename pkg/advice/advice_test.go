package advice

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/adoreshop/pkg/config"
	"github.com/example/adoreshop/pkg/design"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubProvider struct {
	text  string
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (p *stubProvider) Advise(ctx context.Context, username string, product design.ProductKind) (string, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return p.text, p.err
}

func newTestService(p Provider, cfg config.AdviceConfig) *Service {
	return NewService(p, &cfg, zap.NewNop())
}

func TestStaticProvider_MentionsUserAndProduct(t *testing.T) {
	text, err := StaticProvider{}.Advise(context.Background(), "Sari", design.Tie)

	assert.NoError(t, err)
	assert.Contains(t, text, "Sari")
	assert.Contains(t, text, "Tie")
}

func TestAdvise_PassesThroughProviderText(t *testing.T) {
	svc := newTestService(&stubProvider{text: "wear pink"}, config.AdviceConfig{})

	assert.Equal(t, "wear pink", svc.Advise(context.Background(), "Sari", design.Shirt))
}

func TestAdvise_FailureUsesFallback(t *testing.T) {
	svc := newTestService(&stubProvider{err: errors.New("upstream down")}, config.AdviceConfig{Fallback: "so cute"})

	assert.Equal(t, "so cute", svc.Advise(context.Background(), "Sari", design.Shirt))
}

func TestAdvise_EmptyTextUsesFallback(t *testing.T) {
	svc := newTestService(&stubProvider{}, config.AdviceConfig{})

	assert.Equal(t, DefaultFallback, svc.Advise(context.Background(), "Sari", design.Shirt))
}

func TestAdvise_SlowProviderTimesOut(t *testing.T) {
	p := &stubProvider{text: "late", delay: 500 * time.Millisecond}
	svc := newTestService(p, config.AdviceConfig{Timeout: 20 * time.Millisecond})

	start := time.Now()
	got := svc.Advise(context.Background(), "Sari", design.Keychain)

	assert.Equal(t, DefaultFallback, got)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestAdvise_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	p := &stubProvider{err: errors.New("upstream down")}
	svc := newTestService(p, config.AdviceConfig{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 5; i++ {
		assert.Equal(t, DefaultFallback, svc.Advise(context.Background(), "Sari", design.Tie))
	}

	assert.Equal(t, int32(2), p.calls.Load(), "open breaker short-circuits the provider")
}
