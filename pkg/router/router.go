package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shuuuu87/DarkFocus/config"
	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/logger"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before a handler. It can derive a new context (for
// example to attach the authenticated user id) or fail the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler regardless of its outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	cfg    config.Configs
	logger logger.Logger
	db     *gorm.DB

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, so route groups can differ in Before/AddCloser setup.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	handle(r, pattern, http.MethodGet, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	handle(r, pattern, http.MethodPost, handler)
}

func handle[Request, Response any](
	r *Router, pattern, method string, handler HandlerFunc[Request, Response],
) {
	befores := r.befores
	closers := r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(req.Context(), req)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)

		var err error
		var resp *Response
		defer func() {
			var data any
			if resp != nil {
				data = resp
			}
			writeResponse(ctx, w, data, err)
			for _, closer := range closers {
				closer(withError(ctx, err))
			}
		}()

		if req.Method != method {
			err = errorx.New(errorx.NotFound, "Not supported method %s", req.Method)
			return
		}

		for _, before := range befores {
			var next context.Context
			next, err = before(ctx)
			if err != nil {
				return
			}
			ctx = next
		}

		request := new(Request)
		switch method {
		case http.MethodGet:
			err = decodeQuery(req, request)
		case http.MethodPost:
			err = json.NewDecoder(req.Body).Decode(request)
			if errors.Is(err, io.EOF) {
				err = nil
			}
		}
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot decode request of %s: %v", pattern, err)
			err = errorx.New(errorx.BadRequest, "Cannot decode the request")
			return
		}

		resp, err = handler(ctx, request)
	})
}
