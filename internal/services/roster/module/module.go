// Package module implements the roster service module
package module

import (
	"net/http"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/services/roster/domain"
	"yellowboard/internal/services/roster/repo"
	"yellowboard/internal/services/roster/service"
)

// Ports exposed by the roster module
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new roster module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG())

	m := &Module{deps: deps}
	m.ports = Ports{
		Reader: svc,
		Writer: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "roster" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
