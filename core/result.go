package core

import (
	goerrors "github.com/goliatone/go-errors"
)

// Result is a generic success/failure container carrying either a value or a
// rich error envelope. It is a plain data carrier usable by any caller and is
// independent of context resolution.
type Result[T any] struct {
	value T
	err   *goerrors.Error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps err into a Result. Non-envelope errors are normalized through
// the resolution error mapper so every failure carries a category and text
// code.
func Failure[T any](err error) Result[T] {
	if err == nil {
		return Result[T]{}
	}
	return Result[T]{err: resolutionErrorMapper(err)}
}

func (r Result[T]) IsOK() bool {
	return r.err == nil
}

// Value returns the contained value; the zero value when the result failed.
func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() *goerrors.Error {
	return r.err
}

func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// MapResult applies fn to a successful result and propagates failures
// untouched.
func MapResult[T any, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Ok(fn(r.value))
}
