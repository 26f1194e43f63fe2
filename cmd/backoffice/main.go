package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fekuna/omnipos-backoffice/config"
	"github.com/fekuna/omnipos-backoffice/internal/artifact"
	"github.com/fekuna/omnipos-backoffice/internal/auth/password"
	"github.com/fekuna/omnipos-backoffice/internal/auth/remember"
	"github.com/fekuna/omnipos-backoffice/internal/console"
	"github.com/fekuna/omnipos-backoffice/internal/customer"
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/employee"
	"github.com/fekuna/omnipos-backoffice/internal/finance"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/menu"
	"github.com/fekuna/omnipos-backoffice/internal/product"
	"github.com/fekuna/omnipos-backoffice/internal/sale"
	"github.com/fekuna/omnipos-backoffice/internal/session"
	"github.com/fekuna/omnipos-backoffice/internal/supplier"

	authRepoPkg "github.com/fekuna/omnipos-backoffice/internal/auth/repository"
	authUCPkg "github.com/fekuna/omnipos-backoffice/internal/auth/usecase"

	reportRepoPkg "github.com/fekuna/omnipos-backoffice/internal/report/repository"
	reportUCPkg "github.com/fekuna/omnipos-backoffice/internal/report/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	dbPath := flag.String("db", "", "database file, overrides SQLITE_PATH")
	flag.Parse()

	// 1. Load Configuration
	_ = godotenv.Load(*envFile)
	cfg := config.LoadEnv()
	if *dbPath != "" {
		cfg.SQLite.Path = *dbPath
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the store and make sure the schema and admin account exist
	db, err := database.NewSQLite(&database.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
	})
	if err != nil {
		appLogger.Fatal("Could not open database", zap.String("path", cfg.SQLite.Path), zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Could not create tables", zap.Error(err))
	}

	hasher, err := password.New(cfg.Auth.PasswordHash, cfg.Auth.BcryptCost)
	if err != nil {
		appLogger.Fatal("Invalid password hash setting", zap.String("algorithm", cfg.Auth.PasswordHash), zap.Error(err))
	}
	adminHash, err := hasher.Hash(cfg.Auth.AdminPassword)
	if err != nil {
		appLogger.Fatal("Could not hash admin password", zap.Error(err))
	}
	seeded, err := database.SeedAdmin(ctx, db, adminHash, cfg.Auth.AdminEmail)
	if err != nil {
		appLogger.Fatal("Could not seed admin account", zap.Error(err))
	}
	appLogger.Info("Opened SQLite database", zap.String("path", cfg.SQLite.Path), zap.Bool("admin_seeded", seeded))

	// 4. Initialize Repositories and Use Cases
	writer := artifact.NewWriter(cfg.Artifacts.Dir)
	rememberFile := remember.NewFile(filepath.Join(cfg.Artifacts.Dir, cfg.Auth.RememberFile))
	if filepath.IsAbs(cfg.Auth.RememberFile) {
		rememberFile = remember.NewFile(cfg.Auth.RememberFile)
	}

	authRepo := authRepoPkg.NewSQLiteRepository(db)
	authUC := authUCPkg.NewAuthUseCase(authRepo, hasher, rememberFile, writer, appLogger)

	reportRepo := reportRepoPkg.NewSQLiteRepository(db)
	reportUC := reportUCPkg.NewReportUseCase(reportRepo, appLogger)

	// 5. Resource managers, one per screen
	products := product.NewManager(db, appLogger)
	sales := sale.NewManager(db, appLogger)
	customers := customer.NewManager(db, appLogger)
	employees := employee.NewManager(db, appLogger)
	suppliers := supplier.NewManager(db, appLogger)
	transactions := finance.NewManager(db, appLogger)

	dashboard := menu.NewDashboardView(reportUC)
	financePanel := menu.NewFinancePanel(reportUC)
	transactions.OnChange(func(ctx context.Context) {
		if err := financePanel.Refresh(ctx); err != nil {
			appLogger.Warn("Could not refresh finance summary", zap.Error(err))
		}
	})
	salesPanel := menu.NewSalesPanel(reportUC)
	sales.OnChange(func(ctx context.Context) {
		if err := salesPanel.Refresh(ctx); err != nil {
			appLogger.Warn("Could not refresh sales charts", zap.Error(err))
		}
	})

	// 6. Session and navigation
	sess := session.New(appLogger)
	nav := menu.New(sess, appLogger)
	nav.Register(menu.Dashboard, dashboard)
	nav.Register(menu.Products, products)
	nav.Register(menu.Sales, sales, salesPanel)
	nav.Register(menu.Customers, customers)
	nav.Register(menu.Employees, employees)
	nav.Register(menu.Suppliers, suppliers)
	nav.Register(menu.Finance, transactions, financePanel)

	con := console.New(console.Deps{
		Auth:    authUC,
		Session: sess,
		Menu:    nav,
		Resources: map[menu.Destination]console.Resource{
			menu.Products:  products,
			menu.Sales:     sales,
			menu.Customers: customers,
			menu.Employees: employees,
			menu.Suppliers: suppliers,
			menu.Finance:   transactions,
		},
		Dashboard: dashboard,
		Finance:   financePanel,
		Sales:     salesPanel,
		Invoicer:  customer.NewInvoicer(db, writer, appLogger),
		Logger:    appLogger,
	}, os.Stdin, os.Stdout)

	// 7. Run until quit, end of input or a signal
	done := make(chan error, 1)
	go func() {
		done <- con.Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			appLogger.Error("Console stopped", zap.Error(err))
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down")
	}
}
