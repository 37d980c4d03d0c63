// Package module implements the contrib service module
package module

import (
	"net/http"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/services/contrib/domain"
	"yellowboard/internal/services/contrib/repo"
	"yellowboard/internal/services/contrib/service"
	rosterdom "yellowboard/internal/services/roster/domain"
)

// Ports exposed by the contrib module
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new contrib module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("contrib"),
	}, opts...)...)

	ports, ok := b.Ports.(rosterdom.ReaderPort)
	if !ok {
		panic("contrib module: expected WithPorts(roster ReaderPort)")
	}

	cfg := FromConfig(deps.Cfg)
	svc := service.New(deps.PG, repo.NewPG(), ports, cfg.Weights)

	m := &Module{deps: deps}
	m.ports = Ports{
		Reader: svc,
		Writer: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "contrib" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
