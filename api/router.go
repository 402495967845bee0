// Package api maps HTTP requests to domain handlers. Handlers are plain
// functions from a request struct to a response struct; the router decodes
// the request, runs the registered middlewares and wraps the result in the
// response envelope.
package api

import (
	"context"
	"net/http"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context; a
// returned error aborts the request with an error envelope.
type MiddlewareFunc func(ctx context.Context, r *http.Request) (context.Context, error)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context
	befores []MiddlewareFunc
}

// NewRouter creates a router whose handlers run on top of ctx. The context
// must already carry the database handle, configurations and logger.
func NewRouter(ctx context.Context) *Router {
	return &Router{mux: http.NewServeMux(), baseCtx: ctx}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, seeded with the middlewares registered so far.
func (r *Router) Branch() *Router {
	befores := make([]MiddlewareFunc, len(r.befores))
	copy(befores, r.befores)

	return &Router{mux: r.mux, baseCtx: r.baseCtx, befores: befores}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}
