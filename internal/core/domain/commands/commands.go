package commands

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/port"
	"context"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// All returns the built-in handlers, skipping the command ids listed in disabled.
func All(disabled ...string) []port.Handler {
	all := []port.Handler{
		NewAdd("add"),
		NewGreet("greet"),
		NewScale("scale"),
		NewEcho("echo"),
		NewDebug("debug"),
	}

	return slices.DeleteFunc(all, func(h port.Handler) bool {
		return slices.Contains(disabled, h.GetCommand())
	})
}

func requestLogger(ctx context.Context, command string) zerolog.Logger {
	return log.With().
		Str("dispatchId", domain.DispatchID(ctx)).
		Str("command", command).
		Logger()
}
