package handler

import (
	"context"
	"fmt"
	"runtime/debug"
)

// PanicError is a recovered handler panic.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Call runs h and converts a panic into a *PanicError.
func Call(ctx context.Context, h HandlerFunc) (res any, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, &PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return h(ctx)
}
