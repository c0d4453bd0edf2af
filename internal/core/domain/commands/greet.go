package commands

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/domain/command"
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyName = errors.New("empty name")

type Greet struct {
	Name  string
	Shout bool
}

func NewGreet(id string) *command.Handler[Greet] {
	return command.NewHandler(id, handleGreet(id),
		domain.Constructor{
			Params: []domain.Kind{domain.KindString},
			Build: func(args domain.Args) domain.Command {
				return Greet{Name: args.Str(0)}
			},
		},
		domain.Constructor{
			Params: []domain.Kind{domain.KindString, domain.KindBool},
			Build: func(args domain.Args) domain.Command {
				return Greet{Name: args.Str(0), Shout: args.Bool(1)}
			},
		},
	)
}

func handleGreet(id string) command.Func[Greet] {
	return func(ctx context.Context, cmd Greet, result *domain.Result) error {
		l := requestLogger(ctx, id)

		l.Info().Bool("shout", cmd.Shout).Msg("handling request")

		name := strings.TrimSpace(cmd.Name)
		if name == "" {
			l.Debug().Str("name", cmd.Name).Msg("empty name")
			return ErrEmptyName
		}

		greeting := fmt.Sprintf("hello, %s", name)
		if cmd.Shout {
			greeting = strings.ToUpper(greeting) + "!"
		}

		result.Put(greeting)
		return nil
	}
}
