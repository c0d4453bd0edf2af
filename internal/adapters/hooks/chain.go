package hooks

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/port"
	"context"
)

// Chain forwards every notification to each member in order.
type Chain []port.Hooks

func (c Chain) BeforeExecuteCommand(ctx context.Context, id string, cmd domain.Command) {
	for _, h := range c {
		h.BeforeExecuteCommand(ctx, id, cmd)
	}
}

func (c Chain) OnCommandExecuted(ctx context.Context, id string, cmd domain.Command, result *domain.Result) {
	for _, h := range c {
		h.OnCommandExecuted(ctx, id, cmd, result)
	}
}

func (c Chain) OnCommandException(ctx context.Context, id string, cmd domain.Command, err error) {
	for _, h := range c {
		h.OnCommandException(ctx, id, cmd, err)
	}
}

func (c Chain) AfterHandleFinally(ctx context.Context) {
	for _, h := range c {
		h.AfterHandleFinally(ctx)
	}
}
