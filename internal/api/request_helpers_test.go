package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/myflix/myflix-api/internal/api/shared"
	"github.com/myflix/myflix-api/internal/domain"
)

// newAuthedRequest builds a request carrying the given caller in its context
// and the given chi URL parameters, the way the router and auth middleware
// would have prepared it.
func newAuthedRequest(
	t *testing.T,
	method, target string,
	body io.Reader,
	caller *domain.User,
	params map[string]string,
) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, body)

	ctx := req.Context()
	if caller != nil {
		ctx = context.WithValue(ctx, shared.UserContextKey, caller)
	}

	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return req.WithContext(ctx)
}
