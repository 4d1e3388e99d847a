// Package router wraps chi with named routes and middleware groups.
// Handlers register under a name so other code can rebuild their URLs
// with router.URL instead of hard-coding paths.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware wraps a handler, running before it.
type Middleware func(http.Handler) http.Handler

// Router registers handlers on a chi mux and remembers each named
// route's path.
type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes map[string]string
}

func New() *Router {
	return &Router{
		mux:    chi.NewRouter(),
		routes: map[string]string{},
	}
}

// Handler exposes the underlying mux for http.Server.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middleware. Must be called before any route is
// mounted, per chi's rules.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// handle is the single registration point for Router and Group routes.
func (r *Router) handle(method, fullPath, name string, handler http.HandlerFunc, middlewares []Middleware) {
	r.mux.Method(method, fullPath, chain(handler, middlewares))

	if name != "" {
		r.mu.Lock()
		r.routes[name] = fullPath
		r.mu.Unlock()
	}
}

func (r *Router) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handle(http.MethodGet, normalizePath(path), name, handler, middlewares)
}

func (r *Router) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handle(http.MethodPost, normalizePath(path), name, handler, middlewares)
}

func (r *Router) Put(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handle(http.MethodPut, normalizePath(path), name, handler, middlewares)
}

func (r *Router) Patch(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handle(http.MethodPatch, normalizePath(path), name, handler, middlewares)
}

func (r *Router) Delete(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handle(http.MethodDelete, normalizePath(path), name, handler, middlewares)
}

// HandleFunc mounts handler for all methods on path, bypassing named-route
// bookkeeping. Used for infrastructure endpoints like /metrics.
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.mux.HandleFunc(normalizePath(path), handler)
}

// Routes returns a snapshot of name → path for every named route.
func (r *Router) Routes() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.routes))
	for name, path := range r.routes {
		out[name] = path
	}
	return out
}

// Path looks up a named route's path pattern.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.routes[name]
	return path, ok
}

// URL builds a concrete URL for a named route, substituting {param}
// placeholders from params. All placeholders must be filled.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return path, nil
}

// Group scopes routes under a path prefix with shared middleware.
type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

// Group nests another group; prefixes concatenate and middleware stacks
// merge, parent first.
func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: g.merge(middlewares),
	}
}

func (g *Group) merge(extra []Middleware) []Middleware {
	out := make([]Middleware, 0, len(g.middlewares)+len(extra))
	out = append(out, g.middlewares...)
	return append(out, extra...)
}

func (g *Group) handle(method, path, name string, handler http.HandlerFunc, middlewares []Middleware) {
	g.router.handle(method, joinPath(g.prefix, path), name, handler, g.merge(middlewares))
}

func (g *Group) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.handle(http.MethodGet, path, name, handler, middlewares)
}

func (g *Group) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.handle(http.MethodPost, path, name, handler, middlewares)
}

func (g *Group) Put(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.handle(http.MethodPut, path, name, handler, middlewares)
}

func (g *Group) Patch(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.handle(http.MethodPatch, path, name, handler, middlewares)
}

func (g *Group) Delete(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.handle(http.MethodDelete, path, name, handler, middlewares)
}

// chain wraps handler so middlewares run in registration order.
func chain(handler http.Handler, middlewares []Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// joinPath joins segments into a clean absolute path.
func joinPath(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			b.WriteByte('/')
			b.WriteString(trimmed)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func normalizePath(path string) string {
	return joinPath(path)
}
