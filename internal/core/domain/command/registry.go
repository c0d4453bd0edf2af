package command

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/port"
	"fmt"
	"reflect"
	"slices"

	"github.com/rs/zerolog/log"
)

// Registry maps command types to handlers and command identifiers to command types. It is built once by
// NewRegistry and read-only afterwards, so it is safe for concurrent lookups.
type Registry struct {
	commands map[reflect.Type]port.Handler
	ids      map[string]reflect.Type
}

// NewRegistry builds both lookup tables in one pass. A handler reusing an identifier or a command type
// replaces the earlier mapping. A handler that cannot report a concrete command type fails the whole
// registration.
func NewRegistry(handlers ...port.Handler) (*Registry, error) {
	r := &Registry{
		commands: make(map[reflect.Type]port.Handler, len(handlers)),
		ids:      make(map[string]reflect.Type, len(handlers)),
	}

	for _, handler := range handlers {
		if err := r.register(handler); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) register(handler port.Handler) error {
	if handler == nil {
		return fmt.Errorf("%w: nil handler", domain.ErrMalformedHandler)
	}

	id := handler.GetCommand()
	commandType := handler.CommandType()
	if commandType == nil || commandType.Kind() == reflect.Interface {
		return fmt.Errorf("%w: handler %q has no concrete command type", domain.ErrMalformedHandler, id)
	}

	if previous, ok := r.ids[id]; ok {
		log.Warn().Str("handler", id).Stringer("previous", previous).Stringer("type", commandType).
			Msg("command id already registered, replacing")
	}

	log.Info().Str("handler", id).Stringer("type", commandType).Msg("adding command handler to registry")
	r.commands[commandType] = handler
	r.ids[id] = commandType

	return nil
}

func (r *Registry) ByType(commandType reflect.Type) (port.Handler, bool) {
	log.Debug().Stringer("type", commandType).Msg("fetching command handler from registry")

	handler, ok := r.commands[commandType]
	return handler, ok
}

func (r *Registry) ByID(id string) (reflect.Type, port.Handler, bool) {
	log.Debug().Str("command", id).Msg("fetching command type from registry")

	commandType, ok := r.ids[id]
	if !ok {
		return nil, nil, false
	}

	handler, ok := r.commands[commandType]
	if !ok {
		return nil, nil, false
	}

	return commandType, handler, true
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.ids))
	for k := range r.ids {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
