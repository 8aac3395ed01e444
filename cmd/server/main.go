package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/api"
	"github.com/sherm18/ThriveOS/internal/auth"
	"github.com/sherm18/ThriveOS/internal/config"
	"github.com/sherm18/ThriveOS/internal/storage"
)

type application struct {
	logger internal.Logger
	repos  *storage.Repositories
}

func (a *application) Logger() internal.Logger                 { return a.logger }
func (a *application) EntryRepo() storage.EntryRepository      { return a.repos.Entries }
func (a *application) BadgeRepo() storage.BadgeStateRepository { return a.repos.Badges }
func (a *application) UserRepo() storage.UserRepository        { return a.repos.Users }

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer repos.Closer.Close()

	app := &application{logger: logger, repos: repos}

	provider := newAuthProvider(cfg, app)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(provider, cfg))

	r.POST("/entries", api.PostEntry(app))
	r.GET("/entries", api.GetEntries(app))
	r.PUT("/entries/:id", api.PutEntry(app))
	r.DELETE("/entries/:id", api.DeleteEntry(app))
	r.GET("/stats", api.GetStats(app))
	r.GET("/badges", api.GetBadges(app))
	r.GET("/leaderboard", api.GetLeaderboard(app))

	logger.Infof("server listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

func newLogger(cfg *config.Config) internal.Logger {
	var zl *zap.Logger
	var err error
	if cfg.Env == "development" {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	return internal.NewZapLogger(zl.Sugar())
}

func newRepositories(cfg *config.Config, logger internal.Logger) (*storage.Repositories, error) {
	switch cfg.DBType {
	case "postgres":
		return storage.NewPostgresRepositories(cfg.DBDSN, logger)
	case "sqlite":
		return storage.NewSQLiteRepositories(cfg.SQLiteDir, logger)
	default:
		seedFileStorage(cfg)
		return storage.NewFileRepositories(cfg.FileEntries, cfg.FileUsers, cfg.FileBadges, logger)
	}
}

// seedFileStorage makes the data dir and writes a demo user so a fresh
// development checkout works without any provisioning.
func seedFileStorage(cfg *config.Config) {
	dataDir := filepath.Dir(cfg.FileUsers)
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		_ = os.MkdirAll(dataDir, 0o755)
	}
	if cfg.Env != "development" {
		return
	}
	if _, err := os.Stat(cfg.FileUsers); os.IsNotExist(err) {
		_ = os.WriteFile(cfg.FileUsers, []byte(`[{"id":"u1","token":"MOCK-TOKEN","name":"Demo User"}]`), 0o644)
	}
}

func newAuthProvider(cfg *config.Config, app *application) auth.Provider {
	if cfg.Env == "development" {
		return auth.NewLocalAuthProvider(app.UserRepo(), app.Logger())
	}
	return auth.NewRemoteAuthProvider(cfg.AuthURL, app.Logger())
}
