package scope

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks programmer errors: misuse of the request scope
// that no client input can trigger. The dispatcher logs these and answers 500.
var ErrContractViolation = errors.New("contract violation")

var (
	// ErrNotInRequestScope is raised when a request accessor runs without an installed request.
	ErrNotInRequestScope = fmt.Errorf("%w: request accessors used outside of a request scope", ErrContractViolation)
	// ErrAlreadyResponded is returned when a second response is sent for the same request.
	ErrAlreadyResponded = fmt.Errorf("%w: the response was already sent", ErrContractViolation)
	// ErrNamespaceType is raised when one cache namespace is read with two different state types.
	ErrNamespaceType = fmt.Errorf("%w: cache namespace accessed with a different state type", ErrContractViolation)
)
