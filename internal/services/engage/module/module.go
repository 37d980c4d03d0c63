// Package module implements the engage service module
package module

import (
	"net/http"

	"yellowboard/internal/adapters/social"
	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/services/engage/domain"
	"yellowboard/internal/services/engage/repo"
	"yellowboard/internal/services/engage/service"
	postsdom "yellowboard/internal/services/posts/domain"
	rosterdom "yellowboard/internal/services/roster/domain"
)

// Wiring carries the cross-module ports the engage module depends on
type Wiring struct {
	Roster rosterdom.ReaderPort
	Posts  postsdom.ReaderPort
	Marker postsdom.WriterPort
}

// Ports exposed by the engage module
type Ports struct {
	Runner domain.RunnerPort
	Reader domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new engage module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("engage"),
	}, opts...)...)

	wiring, ok := b.Ports.(Wiring)
	if !ok {
		panic("engage module: expected WithPorts(engage Wiring)")
	}
	if wiring.Roster == nil || wiring.Posts == nil || wiring.Marker == nil {
		panic("engage module: Wiring missing Roster, Posts or Marker")
	}

	cfg := FromConfig(deps.Cfg)
	src := social.NewClient(social.Options{
		BaseURL: cfg.APIBase,
		APIKey:  cfg.APIKey,
		Timeout: cfg.APITimeout,
	})

	svc := service.New(deps.PG, repo.NewPG(), src, wiring.Roster, wiring.Posts, wiring.Marker, service.Config{
		WindowDays: cfg.WindowDays,
		Points:     cfg.Points,
		Workers:    cfg.Workers,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Runner: svc,
		Reader: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "engage" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
