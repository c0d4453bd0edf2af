package commands

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/domain/command"
	"context"
	"errors"
	"math"
)

const defaultFactor = 2

var ErrInvalidFactor = errors.New("factor must be a finite number")

type Scale struct {
	Value  float64
	Factor float64
}

// NewScale multiplies a value by a factor, doubling it when the factor is omitted.
func NewScale(id string) *command.Handler[Scale] {
	return command.NewHandler(id, handleScale(id),
		domain.Constructor{
			Params: []domain.Kind{domain.KindFloat},
			Build: func(args domain.Args) domain.Command {
				return Scale{Value: args.Float(0), Factor: defaultFactor}
			},
		},
		domain.Constructor{
			Params: []domain.Kind{domain.KindFloat, domain.KindFloat},
			Build: func(args domain.Args) domain.Command {
				return Scale{Value: args.Float(0), Factor: args.Float(1)}
			},
		},
	)
}

func handleScale(id string) command.Func[Scale] {
	return func(ctx context.Context, cmd Scale, result *domain.Result) error {
		l := requestLogger(ctx, id)

		l.Info().Float64("value", cmd.Value).Msg("handling request")

		if math.IsNaN(cmd.Factor) || math.IsInf(cmd.Factor, 0) {
			l.Debug().Float64("factor", cmd.Factor).Msg("rejecting factor")
			return ErrInvalidFactor
		}

		result.Put(cmd.Value * cmd.Factor)
		return nil
	}
}
