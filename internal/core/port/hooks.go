package port

import (
	"cmdbus/internal/core/domain"
	"context"
)

// NoopHooks implements Hooks with empty methods. Embed it to override only some of them.
type NoopHooks struct{}

func (NoopHooks) BeforeExecuteCommand(context.Context, string, domain.Command) {}

func (NoopHooks) OnCommandExecuted(context.Context, string, domain.Command, *domain.Result) {}

func (NoopHooks) OnCommandException(context.Context, string, domain.Command, error) {}

func (NoopHooks) AfterHandleFinally(context.Context) {}
