package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"climacheck-server/internal/modules/weather/types"
)

// Provider produces a formatted report for a city.
type Provider interface {
	Lookup(ctx context.Context, city string) (string, error)
}

// Recorder receives one event per lookup.
type Recorder interface {
	RecordLookup(ctx context.Context, event types.LookupEvent) error
}

type Service struct {
	provider  Provider
	recorders []Recorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(provider Provider, logger *slog.Logger, recorders ...Recorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:  provider,
		recorders: recorders,
		logger:    logger,
		now:       time.Now,
	}
}

// Lookup delegates to the provider and records the outcome. Recorder errors
// are logged and never change the returned result.
func (s *Service) Lookup(ctx context.Context, city string) (string, error) {
	start := s.now()
	report, err := s.provider.Lookup(ctx, city)
	s.record(context.WithoutCancel(ctx), newEvent(city, start, s.now().Sub(start), err))
	return report, err
}

func (s *Service) record(ctx context.Context, event types.LookupEvent) {
	for _, r := range s.recorders {
		if err := r.RecordLookup(ctx, event); err != nil {
			s.logger.Warn("failed to record lookup",
				"event_id", event.ID,
				"city", event.City,
				"error", err,
			)
		}
	}
}

func newEvent(city string, start time.Time, elapsed time.Duration, err error) types.LookupEvent {
	event := types.LookupEvent{
		ID:          uuid.NewString(),
		City:        strings.TrimSpace(city),
		Outcome:     types.OutcomeOK,
		DurationMs:  elapsed.Milliseconds(),
		RequestedAt: start.UTC(),
	}
	if err != nil {
		event.Outcome = types.KindOf(err).String()
		if msg, ok := types.UserMessage(err); ok {
			event.Message = msg
		}
	}
	return event
}
