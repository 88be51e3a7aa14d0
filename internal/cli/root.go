package cli

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"farmsync/internal/adapters/marketplace"
	"farmsync/internal/adapters/pos"
	"farmsync/internal/config"
	infrahttp "farmsync/internal/infra/http"
	"farmsync/internal/infra/mysql"
	"farmsync/internal/logging"
	"farmsync/internal/observability"
	"farmsync/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "farmsync",
	Short: "Sync farm product pricing and inventory with the marketplace",
	Long:  "farmsync pushes the internal price list to the marketplace, mirrors inventory changes, and builds POS sales reports",
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// app wires the shared collaborators once per command invocation.
type app struct {
	cfg      *config.Config
	db       *sql.DB
	log      *zap.SugaredLogger
	notifier logging.NotifierService
	store    *store.MysqlStore
	market   *marketplace.Client
	pos      *pos.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.NewLogger("info")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := mysql.New(cfg.Mysql)
	if err != nil {
		return nil, err
	}

	httpClient := infrahttp.NewClient(maxDuration(cfg.Marketplace.Timeout, cfg.POS.Timeout))

	a := &app{
		cfg:      cfg,
		db:       db,
		log:      log,
		notifier: logging.NewNotifier(cfg.TelegramBot),
		store:    store.NewMysqlStore(db),
		market:   marketplace.NewClient(cfg.Marketplace, httpClient, log),
		pos:      pos.NewClient(cfg.POS, httpClient),
	}

	observability.Start(cfg.Metrics.Port)
	return a, nil
}

func (a *app) Close() {
	_ = a.log.Sync()
	_ = a.db.Close()
}

func maxDuration(a, b time.Duration) time.Duration {
	if a >= b {
		return a
	}
	return b
}
