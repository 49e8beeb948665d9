package advice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/adoreshop/pkg/config"
	"github.com/example/adoreshop/pkg/design"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const DefaultFallback = "Your design looks lovely! Try adding a ribbon or a star sticker."

var errEmptyAdvice = errors.New("empty advice")

// Provider produces a short styling suggestion.
type Provider interface {
	Advise(ctx context.Context, username string, product design.ProductKind) (string, error)
}

// StaticProvider returns a canned compliment without calling out anywhere.
type StaticProvider struct{}

func (StaticProvider) Advise(ctx context.Context, username string, product design.ProductKind) (string, error) {
	return fmt.Sprintf("Hi %s! Your %s looks so aesthetic! The soft colors are a perfect match. "+
		"Add a ribbon or star sticker to make it even cuter! ✨", username, product), nil
}

// Service wraps a Provider so that callers always get text back. Failures,
// timeouts and an open breaker all yield the fallback string.
type Service struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker[string]
	timeout  time.Duration
	fallback string
	logger   *zap.Logger
}

func NewService(provider Provider, cfg *config.AdviceConfig, logger *zap.Logger) *Service {
	fallback := cfg.Fallback
	if fallback == "" {
		fallback = DefaultFallback
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "style-advice",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Advice breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Service{
		provider: provider,
		breaker:  breaker,
		timeout:  cfg.Timeout,
		fallback: fallback,
		logger:   logger,
	}
}

// Advise never returns an error.
func (s *Service) Advise(ctx context.Context, username string, product design.ProductKind) string {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.breaker.Execute(func() (string, error) {
		return s.call(ctx, username, product)
	})
	if err == nil && text == "" {
		err = errEmptyAdvice
	}
	if err != nil {
		s.logger.Warn("Style advice unavailable, using fallback",
			zap.String("product", string(product)),
			zap.Error(err))
		return s.fallback
	}
	return text
}

// call does not wait on a provider that ignores its context.
func (s *Service) call(ctx context.Context, username string, product design.ProductKind) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := s.provider.Advise(ctx, username, product)
		ch <- result{text: text, err: err}
	}()

	select {
	case r := <-ch:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
