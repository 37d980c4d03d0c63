package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/module"
	"yellowboard/internal/platform/config"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/platform/store"

	"yellowboard/internal/adapters/chatlog"

	engagemod "yellowboard/internal/services/engage/module"
	postsdom "yellowboard/internal/services/posts/domain"
	postsmod "yellowboard/internal/services/posts/module"
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
		lookback   = flag.Int("lookback", 0, "timeline scan lookback in days (0 = configured default)")
		keywords   = flag.String("keywords", "", "comma separated keywords to filter scanned posts")
		skipScan   = flag.Bool("skip-scan", false, "skip the timeline scan, only track and refresh")
		chatExport = flag.String("chat-export", "", "chat export to mine for shared tweet links")
	)
	flag.Parse()

	// Pass CLI flags into CORE_ENGAGE_* so the modules can read their own config
	if *lookback > 0 {
		mustSetEnv("CORE_ENGAGE_SCAN_LOOKBACK_DAYS", strconv.Itoa(*lookback))
	}
	mustSetEnv("CORE_ENGAGE_SCAN_KEYWORDS", *keywords)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Build dependency modules first
	rm := rostermod.New(deps)
	pm := postsmod.New(deps)

	rosterPorts := module.MustPortsOf[rostermod.Ports](rm)
	postsPorts := module.MustPortsOf[postsmod.Ports](pm)

	// Build engage module with ports injected from deps modules
	em := engagemod.New(deps, modkit.WithPorts(engagemod.Wiring{
		Roster: rosterPorts.Reader,
		Posts:  postsPorts.Reader,
		Marker: postsPorts.Writer,
	}))

	// Register ports
	module.Register(rm.Name(), rm.Ports())
	module.Register(pm.Name(), pm.Ports())
	module.Register(em.Name(), em.Ports())

	ctx := context.Background()

	// Scan linked participant timelines for fresh posts
	if !*skipScan {
		participants, err := rosterPorts.Reader.List(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("list participants")
		}
		authors := make([]postsdom.Author, 0, len(participants))
		for _, p := range participants {
			if !p.Linked() {
				continue
			}
			authors = append(authors, postsdom.Author{
				ChatID:   p.ChatID,
				SocialID: p.SocialID,
				Handle:   p.Handle,
			})
		}
		if _, err := postsPorts.Collector.CollectTimelines(ctx, authors); err != nil {
			l.Fatal().Err(err).Msg("timeline scan failed")
		}
	}

	// Pick up tweets participants linked in the chat itself
	if *chatExport != "" {
		dump, err := chatlog.Open(*chatExport)
		if err != nil {
			l.Fatal().Err(err).Str("path", *chatExport).Msg("read chat export")
		}
		var ids []string
		for _, m := range dump.Messages {
			for _, link := range chatlog.ExtractTweetLinks(m.Text) {
				ids = append(ids, link.TweetID)
			}
		}
		index, err := rosterPorts.Reader.SocialIndex(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("load social index")
		}
		if _, err := postsPorts.Collector.CollectShared(ctx, ids, index); err != nil {
			l.Fatal().Err(err).Msg("shared link collection failed")
		}
	}

	// Credit replies and retweets between participants
	runner := module.MustPortsOf[engagemod.Ports](em).Runner
	stats, err := runner.Run(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("engagement tracking failed")
	}
	l.Info().
		Int("posts", stats.Posts).
		Int("events", stats.Events).
		Int("inserted", stats.Inserted).
		Int("threads_marked", stats.ThreadsMarked).
		Int("fetch_errors", stats.FetchErrors).
		Msg("engagement tracked")

	// Refresh metrics on recent posts so scoring sees current counters
	if _, err := postsPorts.Refresher.RefreshMetrics(ctx); err != nil {
		l.Fatal().Err(err).Msg("metrics refresh failed")
	}
}
