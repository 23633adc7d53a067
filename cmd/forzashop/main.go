// Package main is the Forza Shop backend entry point.
//
//	@title						Warung Forza Shop API
//	@version					0.1.0
//	@description				Storefront settings, theme studio, media, previews and the development payment simulator.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: "Bearer {token}"
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/Muhfaizr21/warungforzaSaas-sub001/api/swagger"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/auth"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/config"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/dashboard"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/event"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/media"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/payment"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/preview"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/registry"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/server"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/settings"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/store"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/studio"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/version"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	// Subcommand dispatch (before flag.Parse).
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "hash-password":
			runHashPassword(os.Args[2:])
			return
		case "theme-push":
			runThemePush(os.Args[2:])
			return
		case "version":
			fmt.Println(version.Info())
			return
		}
	}

	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	viperCfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	shareServerConfig(viperCfg)
	cfg := config.New(viperCfg)

	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Forza Shop server starting", zap.String("version", version.Short()))

	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded",
			zap.String("component", "config"),
			zap.String("source", f),
		)
	} else {
		logger.Warn("no configuration file found, using defaults",
			zap.String("component", "config"),
		)
	}

	dbPath := viperCfg.GetString("database.path")
	db, err := store.New(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.CheckVersion(ctx, version.Short()); err != nil {
		logger.Fatal("database version check failed", zap.Error(err))
	}
	logger.Info("database initialized",
		zap.String("component", "database"),
		zap.String("path", dbPath),
	)

	bus := event.NewBus(logger.Named("event"))

	reg := registry.New(logger.Named("registry"))
	mediaMod := media.New()
	modules := []plugin.Plugin{
		settings.New(),
		studio.New(),
		preview.New(),
		mediaMod,
		payment.New(),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			logger.Fatal("failed to register plugin", zap.Error(err))
		}
	}
	if err := reg.Validate(); err != nil {
		logger.Fatal("plugin validation failed", zap.Error(err))
	}

	if err := reg.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{
			Config:  cfg.Sub("plugins." + name),
			Logger:  logger.Named(name),
			Store:   db,
			Bus:     bus,
			Plugins: reg,
		}
	}); err != nil {
		logger.Fatal("failed to initialize plugins", zap.Error(err))
	}
	if err := reg.StartAll(ctx); err != nil {
		logger.Fatal("failed to start plugins", zap.Error(err))
	}

	authHandler := newAuth(viperCfg, logger)

	var srvCfg server.Config
	if err := viperCfg.UnmarshalKey("server", &srvCfg); err != nil {
		logger.Fatal("invalid server configuration", zap.Error(err))
	}
	readyCheck := server.ReadinessChecker(func(ctx context.Context) error {
		return db.DB().PingContext(ctx)
	})
	var extra []server.SimpleRouteRegistrar
	if !reg.IsDisabled("media") {
		extra = append(extra, mediaMod)
	}
	srv := server.New(server.Options{
		Addr:       srvCfg.Addr(),
		Plugins:    reg,
		Logger:     logger,
		Ready:      readyCheck,
		Auth:       authHandler,
		Dashboard:  dashboard.Handler(),
		DevMode:    srvCfg.DevMode,
		SiteOrigin: srvCfg.SiteOrigin,
		Extra:      extra,
	})

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("Forza Shop server ready",
		zap.String("addr", srvCfg.Addr()),
		zap.Bool("dev_mode", srvCfg.DevMode),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop the server first so no handler touches a stopped module.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	reg.StopAll(shutdownCtx)

	logger.Info("Forza Shop server stopped")
}

// shareServerConfig copies server-wide settings into the module sections
// that need them.
func shareServerConfig(v *viper.Viper) {
	v.Set("plugins.studio.site_origin", v.GetString("server.site_origin"))
	v.Set("plugins.payment.dev_mode", v.GetBool("server.dev_mode"))
	v.Set("plugins.media.upload_base", v.GetString("urls.upload_base"))
	if v.GetString("plugins.payment.webhook_url") == "" {
		v.Set("plugins.payment.webhook_url", strings.TrimRight(v.GetString("urls.api_base"), "/")+"/payment/webhook")
	}
}

// newAuth builds the admin login handler and bearer middleware.
func newAuth(v *viper.Viper, logger *zap.Logger) *auth.Handler {
	jwtSecret := v.GetString("auth.jwt_secret")
	if jwtSecret == "" {
		// Ephemeral secret: tokens won't survive restarts.
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			logger.Fatal("failed to generate JWT secret", zap.Error(err))
		}
		jwtSecret = hex.EncodeToString(b)
		logger.Info("using auto-generated JWT secret (set auth.jwt_secret to persist sessions across restarts)",
			zap.String("component", "auth"),
		)
	}

	admin := auth.Admin{
		Username:     v.GetString("auth.admin_username"),
		PasswordHash: v.GetString("auth.admin_password_hash"),
	}
	if admin.PasswordHash == "" {
		logger.Warn("auth.admin_password_hash is empty; admin login is disabled (generate one with `forzashop hash-password`)",
			zap.String("component", "auth"),
		)
	}

	accessTTL := v.GetDuration("auth.access_token_ttl")
	tokens := auth.NewTokenService([]byte(jwtSecret), accessTTL)
	svc := auth.NewService(admin, tokens, logger.Named("auth"))
	logger.Info("auth service initialized",
		zap.String("component", "auth"),
		zap.String("admin", admin.Username),
		zap.Duration("access_token_ttl", accessTTL),
	)
	return auth.NewHandler(svc, logger.Named("auth"))
}
