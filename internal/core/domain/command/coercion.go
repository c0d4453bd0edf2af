package command

import (
	"cmdbus/internal/core/domain"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Construct builds a command from raw CLI arguments using the first candidate whose arity matches and
// whose parameters all coerce. Candidates are tried in order; there is no ranking between several
// matching candidates.
func Construct(rawArgs []string, candidates []domain.Constructor) (domain.Command, error) {
	for i, candidate := range candidates {
		if candidate.Arity() != len(rawArgs) || candidate.Build == nil {
			continue
		}

		args, err := Coerce(rawArgs, candidate.Params)
		if err != nil {
			log.Debug().Err(err).Int("candidate", i).Msg("skipping constructor")
			continue
		}

		return candidate.Build(args), nil
	}

	return nil, fmt.Errorf("%w: %d argument(s) %q", domain.ErrNoCompatibleConstructor, len(rawArgs), rawArgs)
}

// Coerce converts each raw argument into the kind declared at the same position.
func Coerce(rawArgs []string, params []domain.Kind) (domain.Args, error) {
	if len(rawArgs) != len(params) {
		return nil, fmt.Errorf("%w: %d argument(s) for %d parameter(s)", domain.ErrCoercion, len(rawArgs), len(params))
	}

	args := make(domain.Args, len(params))
	for i, kind := range params {
		v, err := coerceOne(rawArgs[i], kind)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}

	return args, nil
}

func coerceOne(raw string, kind domain.Kind) (any, error) {
	switch kind {
	case domain.KindBool:
		switch {
		case strings.EqualFold(raw, "true"):
			return true, nil
		case strings.EqualFold(raw, "false"):
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not a boolean", domain.ErrCoercion, raw)
	case domain.KindInt:
		v, err := strconv.ParseInt(raw, 10, strconv.IntSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCoercion, err)
		}
		return int(v), nil
	case domain.KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCoercion, err)
		}
		return v, nil
	case domain.KindString:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: cannot cast string to %s", domain.ErrCoercion, kind)
	}
}
