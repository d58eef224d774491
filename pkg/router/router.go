package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before a handler. It can derive a new context (for
// example to attach the authenticated user) or reject the request by
// returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler, whether or not it succeeded.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux
	ctx context.Context

	befores []MiddlewareFunc
	closers []CloserFunc
}

// New creates a Router on top of a root context carrying configs, logger and
// database. Every request context derives from it.
func New(ctx context.Context) *Router {
	return &Router{mux: http.NewServeMux(), ctx: ctx}
}

// Branch returns a new Router sharing the underlying mux but with its own
// middleware chain.
func (r *Router) Branch() *Router {
	branch := &Router{mux: r.mux, ctx: r.ctx}
	branch.befores = append(branch.befores, r.befores...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// Mount registers a raw http handler, for endpoints which need direct access
// to the ResponseWriter and bypass the json request decoding.
func (r *Router) Mount(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.ctx, req)

		defer func() {
			for _, closer := range r.closers {
				closer(ctx)
			}
		}()

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		if req.Method != method {
			writeResponse(ctx, w, nil, errorx.New(errorx.BadRequest, "Not supported method"))
			return
		}

		var err error
		for _, before := range r.befores {
			if ctx, err = before(ctx); err != nil {
				writeResponse(ctx, w, nil, err)
				return
			}
		}

		request := new(Request)
		if err := decodeRequest(req, method, request); err != nil {
			writeResponse(ctx, w, nil, errorx.New(errorx.BadRequest, "Cannot parse request"))
			return
		}

		resp, err := handler(ctx, request)
		writeResponse(ctx, w, resp, err)
	}
}

func decodeRequest(req *http.Request, method string, request any) error {
	switch method {
	case http.MethodGet, http.MethodDelete:
		return decodeQuery(req, request)

	default:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}

		if len(body) == 0 {
			return nil
		}

		return json.Unmarshal(body, request)
	}
}

// decodeQuery fills a request struct from url query values, matching fields
// by their json tag. Only string, int, and bool fields are supported, which
// covers every GET request model of this service.
func decodeQuery(req *http.Request, request any) error {
	v := reflect.ValueOf(request).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := req.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int:
			val, err := strconv.Atoi(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(int64(val))

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(val)
		}
	}

	return nil
}
