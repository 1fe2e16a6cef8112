package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinVault/internal/collector"
	"CoinVault/internal/config"
	"CoinVault/internal/directory"
	"CoinVault/internal/export"
	"CoinVault/internal/model"
	"CoinVault/internal/scheduler"
	"CoinVault/internal/store"
	"CoinVault/internal/syncer"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// app bundles the collaborators wired from config.
type app struct {
	cfg    *config.Config
	dir    *directory.Directory
	store  store.Store
	engine *syncer.Engine
}

func newApp(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	dir, err := directory.Load(cfg.DirectoryFile)
	if err != nil {
		return nil, fmt.Errorf("load asset directory: %w", err)
	}

	var st store.Store
	if cfg.Database.SQLitePath != "" {
		st, err = store.NewSQLiteStore(cfg.Database.SQLitePath)
	} else {
		st, err = store.NewFileStore(cfg.CacheDir)
	}
	if err != nil {
		return nil, fmt.Errorf("init cache store: %w", err)
	}

	fetcher := collector.NewCMCFetcher(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.ConvertID, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	return &app{
		cfg:    cfg,
		dir:    dir,
		store:  st,
		engine: syncer.NewEngine(st, fetcher),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("[WARN] close store: %v", err)
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the YAML config file",
		Value:   "configs/config.yaml",
	}
}

func syncAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	queries := cmd.Args().Slice()
	if len(queries) == 0 {
		queries = a.cfg.Watchlist
	}
	if len(queries) == 0 {
		return fmt.Errorf("no assets requested: pass queries or configure a watchlist")
	}
	assets := a.dir.Resolve(queries)
	if len(assets) == 0 {
		return fmt.Errorf("no known assets match %v", queries)
	}
	for _, asset := range assets {
		if !asset.Active() {
			log.Printf("[WARN] [%s] %s is no longer tracked by the provider", asset.Symbol, asset.Name)
		}
	}

	failed := 0
	for _, r := range a.engine.SyncAll(assets) {
		if r.Err != nil {
			failed++
			log.Printf("[ERROR] sync [%s] %s: %v", r.Asset.Symbol, r.Asset.Name, r.Err)
			continue
		}
		log.Printf("[INFO] synced [%s] %s: %d quotes through %s",
			r.Asset.Symbol, r.Asset.Name, len(r.Series.Quotes), r.Series.StatusTimestamp)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed to sync", failed, len(assets))
	}
	return nil
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var refs []model.SeriesRef
	if cmd.Bool("all") {
		refs, err = a.store.ListCached()
		if err != nil {
			return fmt.Errorf("list cached series: %w", err)
		}
	} else {
		queries := cmd.Args().Slice()
		if len(queries) == 0 {
			return fmt.Errorf("no assets requested: pass queries or use --all")
		}
		for _, asset := range a.dir.Resolve(queries) {
			refs = append(refs, asset.Ref())
		}
	}
	if len(refs) == 0 {
		return fmt.Errorf("nothing to export")
	}

	var series []*model.Series
	failed := 0
	for _, ref := range refs {
		s, err := a.store.Load(ref)
		if err != nil {
			failed++
			log.Printf("[ERROR] load [%s] %s: %v", ref.Symbol, ref.Name, err)
			continue
		}
		series = append(series, s)
	}

	start := cmd.Timestamp("start").Format("2006-01-02")
	end := cmd.Timestamp("end").Format("2006-01-02")
	tables, err := export.Range(series, start, end)
	if err != nil {
		return fmt.Errorf("export range: %w", err)
	}
	for _, table := range tables {
		path, err := export.WriteXLSX(table, a.cfg.ExportDir)
		if err != nil {
			failed++
			log.Printf("[ERROR] write [%s] %s: %v", table.Symbol, table.Name, err)
			continue
		}
		log.Printf("[INFO] wrote %s (%d rows)", path, len(table.Rows))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed to export", failed, len(refs))
	}
	return nil
}

func assetsAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, label := range a.dir.ListAll() {
		fmt.Println(label)
	}
	return nil
}

func cachedAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	refs, err := a.store.ListCached()
	if err != nil {
		return fmt.Errorf("list cached series: %w", err)
	}
	for _, ref := range refs {
		fmt.Printf("[%s] %s (id %d)\n", ref.Symbol, ref.Name, ref.ID)
	}
	return nil
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.NewScheduler(a.dir, a.engine, a.cfg.Watchlist)
	if err := sched.Register(a.cfg.Schedule.SyncCron); err != nil {
		return fmt.Errorf("register cron task: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, syncing now")
		go sched.RunNow()
	}

	log.Println("[INFO] CoinVault is watching. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	log.Println("[INFO] shutdown signal received, stopping...")
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	_ = godotenv.Load()

	dateConfig := cli.TimestampConfig{Layouts: []string{"2006-01-02"}}

	cmd := &cli.Command{
		Name:  "vault",
		Usage: "Maintain and export cached cryptocurrency price histories",
		Commands: []*cli.Command{
			{
				Name:      "sync",
				Usage:     "Bring cached series up to date (full fetch on first sync, delta after)",
				ArgsUsage: "[asset name or symbol ...]",
				Flags:     []cli.Flag{configFlag()},
				Action:    syncAction,
			},
			{
				Name:      "export",
				Usage:     "Export cached series for a date range to Excel workbooks",
				ArgsUsage: "[asset name or symbol ...]",
				Flags: []cli.Flag{
					configFlag(),
					&cli.TimestampFlag{
						Name:     "start",
						Aliases:  []string{"s"},
						Usage:    "start date in `YYYY-MM-DD` format (inclusive)",
						Required: true,
						Config:   dateConfig,
					},
					&cli.TimestampFlag{
						Name:     "end",
						Aliases:  []string{"e"},
						Usage:    "end date in `YYYY-MM-DD` format (inclusive). Defaults to today.",
						Value:    time.Now(),
						Config:   dateConfig,
					},
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "export every cached series",
					},
				},
				Action: exportAction,
			},
			{
				Name:   "assets",
				Usage:  "List every asset known to the directory",
				Flags:  []cli.Flag{configFlag()},
				Action: assetsAction,
			},
			{
				Name:   "cached",
				Usage:  "List assets with a cached series",
				Flags:  []cli.Flag{configFlag()},
				Action: cachedAction,
			},
			{
				Name:   "watch",
				Usage:  "Run the periodic sync scheduler until interrupted",
				Flags:  []cli.Flag{configFlag()},
				Action: watchAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}
