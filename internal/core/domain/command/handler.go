package command

import (
	"cmdbus/internal/core/domain"
	"context"
	"fmt"
	"reflect"
)

// Func handles one concrete command type.
type Func[C domain.Command] func(ctx context.Context, cmd C, result *domain.Result) error

// Handler adapts a typed handling function to port.Handler.
type Handler[C domain.Command] struct {
	command      string
	handle       Func[C]
	constructors []domain.Constructor
}

// NewHandler binds handle to the command type C under the given identifier. Constructors are tried in the
// given order when the command is invoked from the command line.
func NewHandler[C domain.Command](command string, handle Func[C], constructors ...domain.Constructor) *Handler[C] {
	return &Handler[C]{command: command, handle: handle, constructors: constructors}
}

func (h *Handler[C]) GetCommand() string {
	return h.command
}

func (h *Handler[C]) CommandType() reflect.Type {
	return reflect.TypeFor[C]()
}

func (h *Handler[C]) Constructors() []domain.Constructor {
	return h.constructors
}

func (h *Handler[C]) Handle(ctx context.Context, cmd domain.Command, result *domain.Result) error {
	typed, ok := cmd.(C)
	if !ok {
		return fmt.Errorf("handler %q cannot handle %T", h.command, cmd)
	}

	return h.handle(ctx, typed, result)
}
