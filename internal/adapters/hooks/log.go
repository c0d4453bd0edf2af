package hooks

import (
	"cmdbus/internal/core/domain"
	"context"

	"github.com/rs/zerolog"
)

// Logger reports every dispatch step, tagged with the dispatch id.
type Logger struct {
	l zerolog.Logger
}

func NewLogger(l zerolog.Logger) *Logger {
	return &Logger{l: l.With().Str("component", "bus").Logger()}
}

func (h *Logger) with(ctx context.Context) *zerolog.Logger {
	l := h.l.With().Str("dispatchId", domain.DispatchID(ctx)).Logger()
	return &l
}

func (h *Logger) BeforeExecuteCommand(ctx context.Context, id string, cmd domain.Command) {
	h.with(ctx).Info().Str("command", id).Type("type", cmd).Msg("handling command")
}

func (h *Logger) OnCommandExecuted(ctx context.Context, id string, _ domain.Command, result *domain.Result) {
	h.with(ctx).Debug().Str("command", id).Bool("result", result.IsPresent()).Msg("command executed")
}

func (h *Logger) OnCommandException(ctx context.Context, id string, _ domain.Command, err error) {
	h.with(ctx).Error().Err(err).Str("command", id).Msg("command failed")
}

func (h *Logger) AfterHandleFinally(ctx context.Context) {
	h.with(ctx).Debug().Msg("dispatch finished")
}
