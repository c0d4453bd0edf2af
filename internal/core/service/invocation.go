package service

import (
	"cmdbus/internal/core/domain"
	"fmt"
	"strings"
)

// Flags are the token prefixes recognised in the process argument vector.
type Flags struct {
	Command string
	Arg     string
}

var DefaultFlags = Flags{Command: "-command=", Arg: "-arg="}

func (f Flags) withDefaults() Flags {
	if f.Command == "" {
		f.Command = DefaultFlags.Command
	}
	if f.Arg == "" {
		f.Arg = DefaultFlags.Arg
	}
	return f
}

// Invocation is the command line request derived from one argument vector.
type Invocation struct {
	Command string
	Args    []string
}

// IsCLIInvocation reports whether args contain a command selector token.
func IsCLIInvocation(args []string, flags Flags) bool {
	flags = flags.withDefaults()

	for _, arg := range args {
		if strings.HasPrefix(arg, flags.Command) {
			return true
		}
	}

	return false
}

// ParseInvocation takes the command id from the first selector token and the positional arguments from
// the argument tokens that follow it. Argument tokens before the selector are ignored.
func ParseInvocation(args []string, flags Flags) (Invocation, error) {
	flags = flags.withDefaults()

	for i, arg := range args {
		id, ok := strings.CutPrefix(arg, flags.Command)
		if !ok {
			continue
		}

		inv := Invocation{Command: id, Args: []string{}}
		for _, rest := range args[i+1:] {
			if value, ok := strings.CutPrefix(rest, flags.Arg); ok {
				inv.Args = append(inv.Args, value)
			}
		}

		return inv, nil
	}

	return Invocation{}, fmt.Errorf("%w: no %q token in arguments", domain.ErrMissingCommandFlag, flags.Command)
}
