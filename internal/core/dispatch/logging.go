package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Logging records each dispatched message with its latency and outcome.
func Logging(log zerolog.Logger) Behavior {
	return func(ctx context.Context, msg any, next Next) (any, error) {
		start := time.Now()
		out, err := next(ctx, msg)

		event := log.Debug()
		if err != nil {
			event = log.Warn().Err(err)
		}
		event.
			Str("message", fmt.Sprintf("%T", msg)).
			Dur("latency", time.Since(start)).
			Msg("dispatch")

		return out, err
	}
}
