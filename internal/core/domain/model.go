package domain

import "fmt"

// Command is an immutable payload describing one requested action. Its identity is its dynamic type.
type Command interface{}

// Result is a single-slot container a handler fills with the output of a command.
// A zero Result is empty and ready to use.
type Result struct {
	value   any
	present bool
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{}
}

// Put stores content in the result. Putting nil still marks the result as present.
func (r *Result) Put(content any) {
	r.value = content
	r.present = true
}

// Get returns the stored content, or ErrNoResult if Put was never called.
func (r *Result) Get() (any, error) {
	if r == nil || !r.present {
		return nil, ErrNoResult
	}

	return r.value, nil
}

// IsPresent reports whether Put has been called.
func (r *Result) IsPresent() bool {
	return r != nil && r.present
}

// ValueOf returns the result content as T. It fails with ErrNoResult when the result is empty and with
// ErrResultType when the stored content is not a T.
func ValueOf[T any](r *Result) (T, error) {
	var zero T

	v, err := r.Get()
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, nil
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %T", ErrResultType, v, zero)
	}

	return typed, nil
}
