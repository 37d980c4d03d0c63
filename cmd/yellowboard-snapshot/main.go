package main

import (
	"context"
	"flag"
	"log"
	"time"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/module"
	"yellowboard/internal/platform/config"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/platform/store"

	activitymod "yellowboard/internal/services/activity/module"
	boardmod "yellowboard/internal/services/board/module"
	contribmod "yellowboard/internal/services/contrib/module"
	engagerepo "yellowboard/internal/services/engage/repo"
	engagesvc "yellowboard/internal/services/engage/service"
	postsmod "yellowboard/internal/services/posts/module"
	rostermod "yellowboard/internal/services/roster/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	date := flag.String("date", time.Now().UTC().Format("2006-01-02"), "snapshot date (YYYY-MM-DD)")
	flag.Parse()

	if _, err := time.Parse("2006-01-02", *date); err != nil {
		log.Fatalf("bad -date: %v", err)
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Build the source modules behind the board
	rm := rostermod.New(deps)
	rosterReader := module.MustPortsOf[rostermod.Ports](rm).Reader

	am := activitymod.New(deps, modkit.WithPorts(rosterReader))
	cm := contribmod.New(deps, modkit.WithPorts(rosterReader))
	pm := postsmod.New(deps)

	// engagement is read-only here, no social API needed
	engageReader := engagesvc.NewReader(deps.PG, engagerepo.NewPG())

	bm := boardmod.New(deps, modkit.WithPorts(boardmod.Wiring{
		Roster:   rosterReader,
		Posts:    module.MustPortsOf[postsmod.Ports](pm).Reader,
		Engage:   engageReader,
		Activity: module.MustPortsOf[activitymod.Ports](am).Reader,
		Contrib:  module.MustPortsOf[contribmod.Ports](cm).Reader,
	}))

	// Register ports
	module.Register(rm.Name(), rm.Ports())
	module.Register(am.Name(), am.Ports())
	module.Register(cm.Name(), cm.Ports())
	module.Register(pm.Name(), pm.Ports())
	module.Register(bm.Name(), bm.Ports())

	// Generate the day's snapshot and swap the live board
	gen := module.MustPortsOf[boardmod.Ports](bm).Generator
	res, err := gen.Generate(context.Background(), *date)
	if err != nil {
		l.Fatal().Err(err).Str("date", *date).Msg("snapshot failed")
	}
	if !res.Generated {
		l.Info().Str("date", *date).Msg("snapshot already taken, nothing to do")
		return
	}
	l.Info().
		Str("date", *date).
		Str("run_id", res.RunID.String()).
		Int("rows", res.Rows).
		Msg("leaderboard snapshot generated")
}
