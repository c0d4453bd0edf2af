package service

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/domain/command"
	"cmdbus/internal/core/port"
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeWeb
	ModeCLI
)

func (m Mode) String() string {
	switch m {
	case ModeWeb:
		return "web"
	case ModeCLI:
		return "cli"
	default:
		return "idle"
	}
}

// Bus dispatches commands to the handlers of a registry and notifies hooks around every dispatch.
type Bus struct {
	registry port.Registry
	hooks    port.Hooks
	flags    Flags

	mutex *sync.Mutex
	mode  Mode
}

// NewBus creates a bus in idle mode. Nil hooks become no-ops and empty flags fall back to DefaultFlags.
func NewBus(registry port.Registry, hooks port.Hooks, flags Flags) *Bus {
	if hooks == nil {
		hooks = port.NoopHooks{}
	}

	return &Bus{
		registry: registry,
		hooks:    hooks,
		flags:    flags.withDefaults(),
		mutex:    &sync.Mutex{},
	}
}

func (b *Bus) Mode() Mode {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.mode
}

func (b *Bus) IsCliMode() bool {
	return b.Mode() == ModeCLI
}

// Start decides the operating mode from the process arguments and, in CLI mode, runs the selected
// command once. It may be called only once per bus.
//
// The returned result is nil in web mode and when the command could not be constructed from the
// arguments. Handler failures in CLI mode reach the hooks and are not returned.
func (b *Bus) Start(ctx context.Context, args []string) (*domain.Result, error) {
	b.mutex.Lock()
	if b.mode != ModeIdle {
		b.mutex.Unlock()
		return nil, domain.ErrAlreadyStarted
	}

	if !IsCLIInvocation(args, b.flags) {
		b.mode = ModeWeb
		b.mutex.Unlock()
		log.Info().Stringer("mode", ModeWeb).Msg("no command flag, not dispatching")
		return nil, nil
	}

	b.mode = ModeCLI
	b.mutex.Unlock()
	log.Info().Stringer("mode", ModeCLI).Msg("command flag found")

	inv, err := ParseInvocation(args, b.flags)
	if err != nil {
		return nil, err
	}

	return b.HandleInvocation(ctx, inv)
}

// HandleInvocation builds the command named by inv and runs it with CLI semantics.
func (b *Bus) HandleInvocation(ctx context.Context, inv Invocation) (*domain.Result, error) {
	l := log.With().Str("command", inv.Command).Strs("args", inv.Args).Logger()

	_, handler, ok := b.registry.ByID(inv.Command)
	if !ok {
		l.Error().Msg("no handler for command")
		return nil, fmt.Errorf("%w: %q", domain.ErrCommandNotFound, inv.Command)
	}

	cmd, err := command.Construct(inv.Args, handler.Constructors())
	if err != nil {
		l.Error().Err(err).Msg("command constructor is incompatible with specified argument types")
		return nil, nil
	}

	result, err := b.execute(ctx, inv.Command, handler, cmd)
	if err != nil {
		l.Warn().Err(err).Msg("command failed")
	}

	return result, nil
}

// Handle dispatches cmd to the handler registered for its dynamic type. A command without a handler
// yields an empty result and no error. Handler errors are returned after the exception hook ran, and
// handler panics are re-raised.
func (b *Bus) Handle(ctx context.Context, cmd domain.Command) (*domain.Result, error) {
	handler, ok := b.registry.ByType(reflect.TypeOf(cmd))
	if !ok {
		log.Debug().Type("type", cmd).Msg("no handler for command type")
		return domain.NewResult(), nil
	}

	result, err := b.execute(ctx, handler.GetCommand(), handler, cmd)
	if err != nil {
		if p, ok := err.(*PanicError); ok {
			panic(p.Value)
		}
		return nil, err
	}

	return result, nil
}

// Dispatch handles cmd and returns its result as T.
func Dispatch[T any](ctx context.Context, b *Bus, cmd domain.Command) (T, error) {
	var zero T

	result, err := b.Handle(ctx, cmd)
	if err != nil {
		return zero, err
	}

	return domain.ValueOf[T](result)
}

// execute runs the hook protocol around one handler call. id is the command id reported to the hooks.
func (b *Bus) execute(ctx context.Context, id string, handler port.Handler, cmd domain.Command) (*domain.Result, error) {
	ctx = domain.WithDispatchID(ctx, newDispatchID())

	defer b.hooks.AfterHandleFinally(ctx)

	b.hooks.BeforeExecuteCommand(ctx, id, cmd)

	result := domain.NewResult()
	if err := invoke(ctx, handler, cmd, result); err != nil {
		b.hooks.OnCommandException(ctx, id, cmd, err)
		return result, err
	}

	b.hooks.OnCommandExecuted(ctx, id, cmd, result)

	return result, nil
}

// PanicError carries a value recovered from a panicking handler.
type PanicError struct {
	Value any
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", p.Value)
}

func invoke(ctx context.Context, handler port.Handler, cmd domain.Command, result *domain.Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()

	return handler.Handle(ctx, cmd, result)
}

func newDispatchID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("failed to generate dispatch id")
		return ""
	}

	return id.String()
}
