package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/module"
	"yellowboard/internal/platform/config"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/platform/store"

	"yellowboard/internal/adapters/chatlog"

	activitydom "yellowboard/internal/services/activity/domain"
	activitymod "yellowboard/internal/services/activity/module"
	rostermod "yellowboard/internal/services/roster/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

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

	var (
		file       = flag.String("file", "", "chat export to apply incrementally")
		backfill   = flag.String("backfill", "", "full-day chat export to rebuild from scratch")
		sessionCap = flag.Int("session-cap", 0, "session message cap (0 = configured default)")
	)
	flag.Parse()

	if (*file == "") == (*backfill == "") {
		log.Fatal("exactly one of -file or -backfill is required")
	}

	// Pass CLI flags into CORE_ACTIVITY_* so the module can read its own config
	if *sessionCap > 0 {
		mustSetEnv("CORE_ACTIVITY_SESSION_CAP", strconv.Itoa(*sessionCap))
	}

	path := *file
	if path == "" {
		path = *backfill
	}
	dump, err := chatlog.Open(path)
	if err != nil {
		l.Fatal().Err(err).Str("path", path).Msg("read chat export")
	}

	msgs := make([]activitydom.Message, 0, len(dump.Messages))
	for _, m := range dump.Messages {
		msgs = append(msgs, activitydom.Message{
			ID:     m.ID,
			ChatID: m.SenderID,
			At:     m.Date.Time,
		})
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	rm := rostermod.New(deps)
	am := activitymod.New(
		deps,
		modkit.WithPorts(module.MustPortsOf[rostermod.Ports](rm).Reader),
	)

	module.Register(rm.Name(), rm.Ports())
	module.Register(am.Name(), am.Ports())

	runner := module.MustPortsOf[activitymod.Ports](am).Runner

	var stats activitydom.Stats
	if *backfill != "" {
		if dump.Date == "" {
			log.Fatal("backfill export is missing its date")
		}
		stats, err = runner.Rebuild(context.Background(), dump.Date, msgs)
	} else {
		stats, err = runner.Apply(context.Background(), msgs)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("activity scoring failed")
	}

	l.Info().
		Int("messages", stats.Messages).
		Int("participants", stats.Participants).
		Int("records", stats.Records).
		Msg("activity scored")
}
