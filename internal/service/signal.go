package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/domain"
)

// SignalService is the event bus between the presence ledger and realtime
// subscribers, backed by redis pubsub. It is constructed once and passed
// by reference; there is no process-global listener registry.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, channel string, event connect.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime forwards decoded check-in events to output until ctx ends.
// The caller owns the output channel's consumption; this goroutine never
// closes it.
func (s *SignalService) Realtime(ctx context.Context, output chan<- connect.Event) {
	pubsub := s.rdb.Subscribe(ctx, domain.SignalChannelCheckIns)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event connect.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(ctx, "failed to decode signal payload",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
