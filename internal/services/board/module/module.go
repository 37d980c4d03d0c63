// Package module implements the board service module
package module

import (
	"net/http"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/services/board/domain"
	"yellowboard/internal/services/board/repo"
	"yellowboard/internal/services/board/service"
)

// Wiring carries the cross-module ports the board module depends on
type Wiring = service.Sources

// Ports exposed by the board module
type Ports struct {
	Generator domain.GeneratorPort
	Reader    domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new board module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("board"),
	}, opts...)...)

	wiring, ok := b.Ports.(Wiring)
	if !ok {
		panic("board module: expected WithPorts(board Wiring)")
	}

	cfg := FromConfig(deps.Cfg)
	svc := service.New(deps.PG, repo.NewPG(), wiring, cfg.Weights)

	m := &Module{deps: deps}
	m.ports = Ports{
		Generator: svc,
		Reader:    svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "board" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
