// Package module implements the posts service module
package module

import (
	"net/http"

	"yellowboard/internal/adapters/social"
	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/services/posts/domain"
	"yellowboard/internal/services/posts/repo"
	"yellowboard/internal/services/posts/service"
)

// Ports exposed by the posts module
type Ports struct {
	Writer    domain.WriterPort
	Collector domain.CollectorPort
	Refresher domain.RefresherPort
	Reader    domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new posts module. The social source is only built
// when an API key is configured, batch binaries require it while the
// read API runs without one
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var src service.Source
	if opts.APIKey != "" {
		src = social.NewClient(social.Options{
			BaseURL: opts.APIBase,
			APIKey:  opts.APIKey,
			Timeout: opts.APITimeout,
		})
	}

	svc := service.New(deps.PG, repo.NewPG(), src, service.Config{
		MetricsWindowDays: opts.MetricsWindowDays,
		BatchSize:         opts.MetricsBatch,
		LookbackDays:      opts.ScanLookbackDays,
		Keywords:          opts.ScanKeywords,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Writer:    svc,
		Collector: svc,
		Refresher: svc,
		Reader:    svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "posts" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
