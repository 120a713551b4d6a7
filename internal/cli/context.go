package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nexa-assets/nexa/internal/assist"
	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/internal/auth"
	"github.com/nexa-assets/nexa/internal/inventory"
	"github.com/nexa-assets/nexa/internal/kvstore"
	"github.com/nexa-assets/nexa/pkg/config"
	"github.com/nexa-assets/nexa/pkg/logging"
	"github.com/nexa-assets/nexa/pkg/metrics"
)

// app bundles everything a command needs. It is built per invocation.
type app struct {
	dataDir string
	cfgPath string
	cfg     *config.Config
	log     *logging.Logger
	metrics *metrics.Registry
	store   kvstore.Store
	journal *audit.Journal
	session *auth.Session
	inv     *inventory.Inventory
}

// loadConfig resolves the data directory and reads the config file.
func loadConfig() (dataDir, cfgPath string, cfg *config.Config, err error) {
	dataDir, err = config.ResolveDataDir(dataDirFlag)
	if err != nil {
		return "", "", nil, err
	}
	cfgPath = configFlag
	if cfgPath == "" {
		cfgPath = config.Path(dataDir)
	}
	cfg, err = config.LoadFile(cfgPath)
	if err != nil {
		return "", "", nil, err
	}
	return dataDir, cfgPath, cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	l := logging.NewLogger(logging.ParseLevel(level))
	l.SetFormat(cfg.Logging.Format)
	logging.SetGlobal(l)
	return l
}

// openApp wires config, logging, storage, the journal and the inventory, and
// restores the signed-in user as the acting user. A backend that cannot be
// opened leaves the inventory in memory-only mode.
func openApp(ctx context.Context) (*app, error) {
	dataDir, cfgPath, cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{
		dataDir: dataDir,
		cfgPath: cfgPath,
		cfg:     cfg,
		log:     newLogger(cfg),
		metrics: metrics.Default(),
	}

	backend := cfg.Storage.Backend
	if ephemeral {
		backend = kvstore.BackendMemory
	}
	store, err := kvstore.Open(ctx, kvstore.Options{
		Backend: backend,
		Dir:     dataDir,
		Redis: kvstore.RedisOptions{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Prefix:   cfg.Storage.Redis.Prefix,
		},
	})
	if err != nil {
		a.log.Warn("storage backend unavailable", map[string]any{"backend": backend, "error": err.Error()})
		store = kvstore.NewUnavailableStore(err)
	}
	a.store = store

	if cfg.Journal.Enabled && !ephemeral {
		a.journal = audit.NewJournal(filepath.Join(dataDir, audit.JournalFileName))
	}

	a.session = auth.NewSession(store)
	a.inv = inventory.New(inventory.Options{
		Store:   store,
		Journal: a.journal,
		Logger:  a.log,
		Metrics: a.metrics,
	})
	a.inv.Load(ctx)

	if u, ok, err := a.session.Current(ctx); err == nil && ok {
		a.inv.SetActor(u.Name)
	}
	return a, nil
}

func (a *app) assistant(ctx context.Context) *assist.Assistant {
	return assist.FromConfig(ctx, a.cfg.Assist.APIKey, a.cfg.Assist.Model,
		assist.WithTimeout(a.cfg.AssistTimeout()),
		assist.WithLogger(a.log),
		assist.WithMetrics(a.metrics),
	)
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Debug("close store", map[string]any{"error": err.Error()})
	}
	_ = a.log.Sync()
}

// withApp runs fn with an opened app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := fn(a); err != nil {
		return err
	}
	if a.inv.MemoryOnly() && !ephemeral {
		fmtErr("warning: storage unavailable, changes were not saved")
	}
	return nil
}

var errAborted = errors.New("aborted")

// confirm asks a yes/no question on in. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
