// Package module wires the contribution admin surface into the API
package module

import (
	"net/http"

	modkit "yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	str "yellowboard/internal/platform/strings"
	contribhttp "yellowboard/internal/services/api/contrib/http"
	contribmod "yellowboard/internal/services/contrib/module"
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

	ports contribmod.Ports
}

// New constructs the contrib API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("contrib"),
		modkit.WithPrefix("/contrib"),
	}, opts...)...)

	ports, ok := b.Ports.(contribmod.Ports)
	if !ok {
		panic("contrib api module: expected WithPorts(contrib Ports)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		ports:     ports,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		contribhttp.Register(r, m.ports.Reader, m.ports.Writer)
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
func (m *Module) Ports() any { return m.ports }
