// Package module implements the activity service module
package module

import (
	"net/http"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/services/activity/domain"
	"yellowboard/internal/services/activity/repo"
	"yellowboard/internal/services/activity/service"
	rosterdom "yellowboard/internal/services/roster/domain"
)

// Ports exposed by the activity module
type Ports struct {
	Runner domain.RunnerPort
	Reader domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new activity module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("activity"),
	}, opts...)...)

	ports, ok := b.Ports.(rosterdom.ReaderPort)
	if !ok {
		panic("activity module: expected WithPorts(roster ReaderPort)")
	}

	cfg := FromConfig(deps.Cfg)
	svc := service.New(deps.PG, repo.NewPG(), ports, service.Config{
		Cap:   cfg.SessionCap,
		Bonus: cfg.Bonus,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Runner: svc,
		Reader: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "activity" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
