package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// services are the application services the commands drive
type services struct {
	users      *identityapp.UserService
	categories *catalogapp.CategoryService
	orders     *tradeapp.OrderService
	close      func() error
}

// connectFunc opens the services; tests swap in an sqlite-backed one
type connectFunc func(ctx context.Context, verbose bool) (*services, error)

// newServices builds the services over a gorm connection. store is the
// catalog cache the server reads, so category changes made here evict its
// listing.
func newServices(db *gorm.DB, store cache.Store, cacheTTL time.Duration, log *zap.Logger, closeFn func() error) *services {
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewAuditLogHandler(log))
	bus.Subscribe(catalogapp.NewCatalogCacheInvalidator(store, log))

	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	return &services{
		users:      identityapp.NewUserService(persistence.NewGormUserRepository(db), bus, log),
		categories: catalogapp.NewCategoryService(categoryRepo, productRepo, store, cacheTTL, bus, log),
		orders:     tradeapp.NewOrderService(persistence.NewGormOrderRepository(db), bus, log),
		close:      closeFn,
	}
}

func connectDatabase(ctx context.Context, verbose bool) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.New(&logger.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(level))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	backends, err := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).Create(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache: %w", err)
	}

	closeFn := func() error {
		return errors.Join(backends.Close(), db.Close())
	}
	return newServices(db.DB, backends.Catalog, cfg.Cache.CategoryTTL, log, closeFn), nil
}

// newRootCmd assembles the command tree. A nil connect uses the configured
// database.
func newRootCmd(connect connectFunc) *cobra.Command {
	if connect == nil {
		connect = connectDatabase
	}

	var (
		verbose bool
		svc     *services
	)
	root := &cobra.Command{
		Use:          "storefrontctl",
		Short:        "Operate a storefront database",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := connect(cmd.Context(), verbose)
			if err != nil {
				return err
			}
			svc = s
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if svc != nil && svc.close != nil {
				return svc.close()
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log SQL and service events")

	get := func() *services { return svc }
	root.AddCommand(
		newUserCmd(get),
		newCategoryCmd(get),
		newOrdersCmd(get),
	)
	return root
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, headerStyle.Render(title))
}
