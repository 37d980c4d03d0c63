// Package module wires the activity read surface into the API
package module

import (
	"net/http"

	modkit "yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	str "yellowboard/internal/platform/strings"
	activitydom "yellowboard/internal/services/activity/domain"
	activityhttp "yellowboard/internal/services/api/activity/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	reader activitydom.ReaderPort
}

// New constructs the activity API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("activity"),
		modkit.WithPrefix("/activity"),
	}, opts...)...)

	reader, ok := b.Ports.(activitydom.ReaderPort)
	if !ok {
		panic("activity api module: expected WithPorts(activity ReaderPort)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		reader:    reader,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		activityhttp.Register(r, m.reader)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.reader }
