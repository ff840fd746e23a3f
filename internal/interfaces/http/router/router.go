// Package router assembles the storefront's versioned route table.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts routes onto a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router for engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Prefix returns the versioned API prefix
func (r *Router) Prefix() string {
	return "/api/" + r.apiVersion
}

// Setup mounts every registered group
func (r *Router) Setup() {
	api := r.engine.Group(r.Prefix())
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// Group is one area of the API sharing a prefix and a middleware chain.
// Per-route middleware goes before the handler in the route's handler list.
type Group struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*Group
}

// NewGroup creates a group mounted at prefix
func NewGroup(prefix string, middleware ...gin.HandlerFunc) *Group {
	return &Group{prefix: prefix, middleware: middleware}
}

// Handle adds a route
func (g *Group) Handle(method, relativePath string, handlers ...gin.HandlerFunc) *Group {
	g.routes = append(g.routes, route{method: method, path: relativePath, handlers: handlers})
	return g
}

func (g *Group) GET(relativePath string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodGet, relativePath, handlers...)
}

func (g *Group) POST(relativePath string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPost, relativePath, handlers...)
}

func (g *Group) PUT(relativePath string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPut, relativePath, handlers...)
}

func (g *Group) DELETE(relativePath string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodDelete, relativePath, handlers...)
}

// Group creates a nested group that inherits this group's middleware
func (g *Group) Group(prefix string, middleware ...gin.HandlerFunc) *Group {
	child := NewGroup(prefix, middleware...)
	g.children = append(g.children, child)
	return child
}

// RegisterRoutes implements RouteRegistrar
func (g *Group) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix)
	if len(g.middleware) > 0 {
		group.Use(g.middleware...)
	}
	for _, r := range g.routes {
		group.Handle(r.method, r.path, r.handlers...)
	}
	for _, child := range g.children {
		child.RegisterRoutes(group)
	}
}

// RouteInfo describes a mounted route
type RouteInfo struct {
	Method string
	Path   string
}

// Routes lists the group's routes relative to its parent
func (g *Group) Routes() []RouteInfo {
	var out []RouteInfo
	for _, r := range g.routes {
		out = append(out, RouteInfo{Method: r.method, Path: joinPath(g.prefix, r.path)})
	}
	for _, child := range g.children {
		for _, info := range child.Routes() {
			out = append(out, RouteInfo{Method: info.Method, Path: joinPath(g.prefix, info.Path)})
		}
	}
	return out
}

func joinPath(prefix, relative string) string {
	if relative == "" {
		return prefix
	}
	joined := path.Join(prefix, relative)
	if len(relative) > 1 && relative[len(relative)-1] == '/' {
		joined += "/"
	}
	return joined
}
