package router

import (
	"context"
	"net/http"

	"github.com/birdsofspace/spacebirdz-backend/config"
	"github.com/birdsofspace/spacebirdz-backend/pkg/logger"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// HandlerFunc is the signature of all domain operations exposed over the API.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context (for
// example to attach the authenticated user id). Returning an error stops the
// request and writes the error response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been decided, on every exit path.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux    *http.ServeMux
	cfg    config.Configs
	db     *gorm.DB
	logger logger.Logger

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// Branch creates a router sharing the same mux but with an independent
// middleware chain, so route groups can require different middlewares.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:    r.mux,
		cfg:    r.cfg,
		db:     r.db,
		logger: r.logger,
	}

	branch.befores = append(branch.befores, r.befores...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   r.cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}
