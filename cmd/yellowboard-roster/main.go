package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/module"
	"yellowboard/internal/platform/config"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/platform/store"

	"yellowboard/internal/adapters/social"

	rosterdom "yellowboard/internal/services/roster/domain"
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

	var (
		add      = flag.Bool("add", false, "add or update the participant named by -chat")
		link     = flag.Bool("link", false, "attach the -handle social account to -chat")
		list     = flag.Bool("list", false, "print the participant directory")
		chat     = flag.Int64("chat", 0, "participant chat id")
		name     = flag.String("name", "", "display name")
		handle   = flag.String("handle", "", "social handle")
		socialID = flag.String("social-id", "", "social account id (skips the handle lookup)")
	)
	flag.Parse()

	actions := 0
	for _, set := range []bool{*add, *link, *list} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		log.Fatal("exactly one of -add, -link or -list is required")
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	rm := rostermod.New(deps)
	module.Register(rm.Name(), rm.Ports())
	ports := module.MustPortsOf[rostermod.Ports](rm)
	ctx := context.Background()

	switch {
	case *add:
		if *chat == 0 {
			log.Fatal("-add requires -chat")
		}
		err := ports.Writer.Upsert(ctx, rosterdom.Participant{
			ChatID:      *chat,
			DisplayName: *name,
			Handle:      *handle,
		})
		if err != nil {
			l.Fatal().Err(err).Msg("upsert participant")
		}
		fmt.Printf("participant %d saved\n", *chat)

	case *link:
		if *chat == 0 || *handle == "" {
			log.Fatal("-link requires -chat and -handle")
		}
		id := *socialID
		if id == "" {
			id = lookupSocialID(ctx, root, l, *handle)
		}
		if err := ports.Writer.LinkSocial(ctx, *chat, *handle, id); err != nil {
			l.Fatal().Err(err).Msg("link social account")
		}
		fmt.Printf("participant %d linked to @%s (%s)\n", *chat, social.NormalizeHandle(*handle), id)

	case *list:
		participants, err := ports.Reader.List(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("list participants")
		}
		for _, p := range participants {
			linked := "-"
			if p.Linked() {
				linked = "@" + p.Handle
			}
			fmt.Printf("%d\t%s\t%s\n", p.ChatID, p.DisplayName, linked)
		}
	}
}

// lookupSocialID resolves a handle to its platform id via the social API
func lookupSocialID(ctx context.Context, root config.Conf, l *logger.Logger, handle string) string {
	sf := root.Prefix("SOCIAL_API_")
	client := social.NewClient(social.Options{
		BaseURL: sf.MayString("BASE", ""),
		APIKey:  sf.MustString("KEY"),
		Timeout: sf.MayDuration("TIMEOUT", 40*time.Second),
	})
	u, err := client.UserInfo(ctx, social.NormalizeHandle(handle))
	if err != nil {
		l.Fatal().Err(err).Str("handle", handle).Msg("resolve social account")
	}
	return string(u.ID)
}
