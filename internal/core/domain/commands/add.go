package commands

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/domain/command"
	"context"
)

type Add struct {
	A int
	B int
}

func NewAdd(id string) *command.Handler[Add] {
	return command.NewHandler(id, handleAdd(id), domain.Constructor{
		Params: []domain.Kind{domain.KindInt, domain.KindInt},
		Build: func(args domain.Args) domain.Command {
			return Add{A: args.Int(0), B: args.Int(1)}
		},
	})
}

func handleAdd(id string) command.Func[Add] {
	return func(ctx context.Context, cmd Add, result *domain.Result) error {
		l := requestLogger(ctx, id)

		l.Info().Int("a", cmd.A).Int("b", cmd.B).Msg("handling request")

		result.Put(cmd.A + cmd.B)
		return nil
	}
}
