package response

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/ambient/core/scope"
)

var (
	// ErrUnsupportedBody is returned for handler results that have no body
	// representation, such as functions and channels.
	ErrUnsupportedBody = fmt.Errorf("%w: unsupported body value", scope.ErrContractViolation)

	// ErrAlreadyRendered is returned when a response model is rendered twice.
	ErrAlreadyRendered = fmt.Errorf("%w: response already rendered", scope.ErrContractViolation)

	// ErrWriteResponse wraps transport write failures.
	ErrWriteResponse = errors.New("failed to write response")
)
