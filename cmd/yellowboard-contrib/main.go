package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"yellowboard/internal/modkit"
	"yellowboard/internal/modkit/module"
	"yellowboard/internal/platform/config"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/platform/store"

	contribdom "yellowboard/internal/services/contrib/domain"
	contribmod "yellowboard/internal/services/contrib/module"
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
		add    = flag.String("add", "", "record a contribution of this category for -chat")
		update = flag.Int64("update", 0, "rewrite the contribution with this id")
		remove = flag.Int64("remove", 0, "delete the contribution with this id")
		list   = flag.Int64("list", 0, "list contributions for this chat id")
		chat   = flag.Int64("chat", 0, "participant chat id")
		points = flag.Float64("points", 0, "points to award (0 = category default)")
		note   = flag.String("note", "", "free-form note")
		by     = flag.String("by", "", "operator recording the contribution")
	)
	flag.Parse()

	actions := 0
	for _, set := range []bool{*add != "", *update != 0, *remove != 0, *list != 0} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		log.Fatalf("exactly one of -add, -update, -remove or -list is required; categories: %s",
			strings.Join(categoryNames(), ", "))
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	rm := rostermod.New(deps)
	cm := contribmod.New(
		deps,
		modkit.WithPorts(module.MustPortsOf[rostermod.Ports](rm).Reader),
	)

	module.Register(rm.Name(), rm.Ports())
	module.Register(cm.Name(), cm.Ports())

	ports := module.MustPortsOf[contribmod.Ports](cm)
	ctx := context.Background()

	switch {
	case *add != "":
		if *chat == 0 {
			log.Fatal("-add requires -chat")
		}
		id, err := ports.Writer.Add(ctx, contribdom.Contribution{
			ChatID:     *chat,
			Category:   contribdom.Category(*add),
			Points:     *points,
			Note:       *note,
			RecordedBy: *by,
		})
		if err != nil {
			l.Fatal().Err(err).Msg("add contribution")
		}
		fmt.Printf("recorded contribution %d\n", id)

	case *update != 0:
		if err := ports.Writer.Update(ctx, *update, *points, *note); err != nil {
			l.Fatal().Err(err).Msg("update contribution")
		}
		fmt.Printf("updated contribution %d\n", *update)

	case *remove != 0:
		if err := ports.Writer.Remove(ctx, *remove); err != nil {
			l.Fatal().Err(err).Msg("remove contribution")
		}
		fmt.Printf("removed contribution %d\n", *remove)

	case *list != 0:
		rows, err := ports.Reader.List(ctx, *list)
		if err != nil {
			l.Fatal().Err(err).Msg("list contributions")
		}
		for _, c := range rows {
			fmt.Printf("%d\t%s\t%.1f\t%s\t%s\n",
				c.ID, c.Category, c.Points, c.CreatedAt.Format("2006-01-02"), c.Note)
		}
	}
}

func categoryNames() []string {
	cats := contribdom.Categories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}
