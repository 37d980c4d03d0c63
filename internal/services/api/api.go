// Package api provides the HTTP API for the application
package api

import (
	"yellowboard/internal/platform/config"
	"yellowboard/internal/platform/logger"
	phttp "yellowboard/internal/platform/net/http"
	"yellowboard/internal/platform/store"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/modkit/module"
	"yellowboard/internal/modkit/swaggerkit"

	apiactivity "yellowboard/internal/services/api/activity/module"
	apiboard "yellowboard/internal/services/api/board/module"
	apicontrib "yellowboard/internal/services/api/contrib/module"
	metamod "yellowboard/internal/services/api/meta/module"

	boardrepo "yellowboard/internal/services/board/repo"
	boardsvc "yellowboard/internal/services/board/service"

	// Worker modules that own the ports the API serves
	activitymod "yellowboard/internal/services/activity/module"
	contribmod "yellowboard/internal/services/contrib/module"
	rostermod "yellowboard/internal/services/roster/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Construct the worker modules behind the read surface and extract
	// their reader ports
	roster := rostermod.New(deps)
	rosterReader := module.MustPortsOf[rostermod.Ports](roster).Reader

	activity := activitymod.New(deps, modkit.WithPorts(rosterReader))
	activityReader := module.MustPortsOf[activitymod.Ports](activity).Reader

	contrib := contribmod.New(deps, modkit.WithPorts(rosterReader))
	contribPorts := module.MustPortsOf[contribmod.Ports](contrib)

	// the board read surface needs no generation sources
	boardReader := boardsvc.NewReader(deps.PG, boardrepo.NewPG())

	mods := []module.Module{
		metamod.New(deps),
		apiboard.New(deps, modkit.WithPorts(boardReader)),
		apiactivity.New(deps, modkit.WithPorts(activityReader)),
		apicontrib.New(deps, modkit.WithPorts(contribPorts)),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
