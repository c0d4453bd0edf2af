package port

import (
	"cmdbus/internal/core/domain"
	"context"
	"reflect"
)

type Handler interface {
	// Handle executes cmd and may put its output into result.
	Handle(ctx context.Context, cmd domain.Command, result *domain.Result) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
	// CommandType returns the dynamic type of the commands this handler accepts.
	CommandType() reflect.Type
	// Constructors lists the candidate signatures for building the command from CLI arguments, in
	// preference order.
	Constructors() []domain.Constructor
}

type Registry interface {
	// ByType retrieves the handler for a command type.
	ByType(commandType reflect.Type) (Handler, bool)
	// ByID retrieves the command type and handler registered under a command identifier.
	ByID(id string) (reflect.Type, Handler, bool)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}

// Hooks are notification points around every dispatch. They never alter propagation.
type Hooks interface {
	BeforeExecuteCommand(ctx context.Context, id string, cmd domain.Command)
	OnCommandExecuted(ctx context.Context, id string, cmd domain.Command, result *domain.Result)
	OnCommandException(ctx context.Context, id string, cmd domain.Command, err error)
	AfterHandleFinally(ctx context.Context)
}
