package domain

import "errors"

var (
	ErrNoResult                = errors.New("no result present")
	ErrResultType              = errors.New("result has unexpected type")
	ErrCommandNotFound         = errors.New("command not found")
	ErrMissingCommandFlag      = errors.New("missing command flag")
	ErrNoCompatibleConstructor = errors.New("command constructor is incompatible with specified argument types")
	ErrCoercion                = errors.New("argument coercion failed")
	ErrMalformedHandler        = errors.New("malformed command handler")
	ErrAlreadyStarted          = errors.New("command bus already started")
)
