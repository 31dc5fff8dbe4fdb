package health

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/ambient/core/header"
	"github.com/dmitrymomot/ambient/core/response"
)

// Liveness indicates if the service process is running.
// Always answers "ALIVE" with 200 OK and never checks dependencies.
func Liveness(ctx context.Context) (any, error) {
	header.SetCacheControl(ctx, header.NoCache())
	return "ALIVE", nil
}

// NoContent answers 204 without a body.
func NoContent(context.Context) (any, error) {
	return response.New(response.Empty()).SetStatus(http.StatusNoContent), nil
}
