package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/activity"
	"github.com/abhisek/cosmath/internal/config"
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/llm"
	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/screens/history"
	"github.com/abhisek/cosmath/internal/store"
	"github.com/abhisek/cosmath/internal/store/mongostore"
	"github.com/abhisek/cosmath/internal/tutor"
)

// deps is everything a command needs, opened from flags and config.
type deps struct {
	cfg       config.Config
	logger    *slog.Logger
	learnerID string

	store    *store.Store
	events   store.EventRepo
	service  *progress.Service
	history  history.Source
	activity activity.Tracker

	closers []func()
}

// openDeps loads config, opens the stores and builds the progress service.
// The LLM tutor is built separately by openTutor since most commands do not
// need it.
func openDeps(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	d := &deps{
		cfg:       cfg,
		logger:    cfg.Logger(os.Stderr),
		learnerID: resolveLearner(cmd),
	}
	slog.SetDefault(d.logger)

	catalog, table, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.events = st.EventRepo()
	d.closers = append(d.closers, func() { st.Close() })

	var (
		repo progress.Repo          = st.ProgressRepo()
		log  progress.CompletionLog = d.events
	)
	d.history = d.events

	if cfg.Store.Driver == config.DriverMongo {
		ms, err := mongostore.Open(ctx, cfg.Store.Mongo.URI, cfg.Store.Mongo.Database)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		d.closers = append(d.closers, func() { ms.Close(context.Background()) })
		repo = ms.ProgressRepo()
		log = ms.CompletionLog()
		d.history = ms.CompletionLog()
		d.logger.Debug("using mongo store", "database", cfg.Store.Mongo.Database)
	}

	d.activity = openActivity(ctx, cfg, d)

	d.service = progress.NewService(repo, catalog, table,
		progress.WithCompletionLog(log),
		progress.WithActivityTracker(d.activity),
		progress.WithLogger(d.logger),
	)
	return d, nil
}

func loadCatalog(cmd *cobra.Command) (*curriculum.Catalog, *achievements.Table, error) {
	path, _ := cmd.Flags().GetString("curriculum")
	if path == "" {
		return curriculum.Default(), achievements.DefaultTable(), nil
	}
	catalog, err := curriculum.LoadFile(path, version)
	if err != nil {
		return nil, nil, fmt.Errorf("load curriculum: %w", err)
	}
	table, err := achievements.TableFor(catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("build achievements: %w", err)
	}
	return catalog, table, nil
}

// openActivity uses Redis when configured and reachable, otherwise an
// in-process tracker.
func openActivity(ctx context.Context, cfg config.Config, d *deps) activity.Tracker {
	ttl := config.Duration(cfg.Activity.TTL, activity.DefaultTTL)
	if cfg.Activity.Redis.Addr == "" {
		return activity.NewMemory(ttl)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Activity.Redis.Addr,
		Password: cfg.Activity.Redis.Password,
		DB:       cfg.Activity.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		d.logger.Warn("redis unavailable, lesson resume is limited to this run", "addr", cfg.Activity.Redis.Addr, "err", err)
		client.Close()
		return activity.NewMemory(ttl)
	}
	d.closers = append(d.closers, func() { client.Close() })
	return activity.NewRedis(client, ttl)
}

// openTutor builds the hint tutor. It returns nil when no LLM provider is
// configured.
func (d *deps) openTutor(ctx context.Context) *tutor.Tutor {
	lc := llm.ConfigWith(d.cfg.LLM.Provider, d.cfg.LLM.Model, d.cfg.LLM.BaseURL)
	lc.Timeout = config.Duration(d.cfg.LLM.Timeout, lc.Timeout)
	if d.cfg.LLM.Retries > 0 {
		lc.Retry.MaxAttempts = d.cfg.LLM.Retries
	}

	provider, err := llm.NewProvider(ctx, lc, d.events, d.logger)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		}
		fmt.Fprintln(os.Stderr, "Hints will be unavailable.")
		return nil
	}
	return tutor.New(provider, tutor.DefaultConfig())
}

// Close releases everything in reverse open order.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}
