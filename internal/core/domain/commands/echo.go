package commands

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/domain/command"
	"context"
)

type Echo struct {
	Text string
}

// NewEcho returns its text unchanged. Without an argument it leaves the result empty.
func NewEcho(id string) *command.Handler[Echo] {
	return command.NewHandler(id, handleEcho(id),
		domain.Constructor{
			Build: func(_ domain.Args) domain.Command {
				return Echo{}
			},
		},
		domain.Constructor{
			Params: []domain.Kind{domain.KindString},
			Build: func(args domain.Args) domain.Command {
				return Echo{Text: args.Str(0)}
			},
		},
	)
}

func handleEcho(id string) command.Func[Echo] {
	return func(ctx context.Context, cmd Echo, result *domain.Result) error {
		l := requestLogger(ctx, id)

		l.Info().Msg("handling request")

		if cmd.Text == "" {
			l.Debug().Msg("nothing to echo")
			return nil
		}

		result.Put(cmd.Text)
		return nil
	}
}
