package response

import (
	"context"
	"errors"
)

// Respond converts a handler result into a response and sends it. A non-nil
// err takes the place of v. When conversion or sending fails before anything
// reached the client, a 500 error response is sent instead and the original
// failure is returned. Respond is a no-op for a request that has already been
// responded to.
func Respond(ctx context.Context, v any, err error) error {
	if err != nil {
		v = err
	}

	resp, err := From(ctx, v)
	if err == nil && resp == nil {
		return nil
	}
	if err == nil {
		err = resp.Send(ctx)
	}
	if err == nil {
		return nil
	}

	if !HasResponded(ctx) {
		if sendErr := New(Error(ErrInternalServerError.WithError(err))).Send(ctx); sendErr != nil {
			return errors.Join(err, sendErr)
		}
	}
	return err
}
