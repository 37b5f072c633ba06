package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"linguachat/backend/internal/api"
	"linguachat/backend/internal/config"
	"linguachat/backend/internal/database"
	"linguachat/backend/internal/genai"
	"linguachat/backend/internal/prefs"
	"linguachat/backend/internal/quota"
	"linguachat/backend/internal/repository"
	"linguachat/backend/internal/service"
	"linguachat/backend/internal/translate"
)

// App holds the assembled application: the open database handle and the
// configured HTTP server. Construction is separated from Run so tests can
// build the whole dependency graph without binding a port.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Server *http.Server
}

// NewApp wires the full dependency graph from configuration.
//
// A SQLite database that cannot even be created is not fatal: the app keeps
// running with in-memory quota bookkeeping and analytics, which then survive
// only until restart. The fallback preference store covers the other case,
// a database that goes away after startup.
func NewApp(cfg *config.Config) (*App, error) {
	var prefStore prefs.Store
	var repo repository.Repository

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		slog.Warn("Could not open persistent storage, continuing in memory.",
			"path", cfg.DatabasePath, "error", err)
		prefStore = prefs.NewMemoryStore()
		repo = repository.NewMemoryRepository()
	} else {
		prefStore = prefs.NewFallbackStore(prefs.NewSQLiteStore(db))
		repo = repository.NewSQLiteRepository(db)
	}

	quotaCtrl := quota.NewController(prefStore, cfg.DailyLimit, cfg.DefaultAPIKey)

	provider := genai.NewGeminiProvider(cfg.GenAIBaseURL, cfg.GenAIModel)
	generator := genai.NewClient(provider, genai.NewGeminiClassifier(), quotaCtrl)

	conversationService := service.NewConversationService(generator, translate.NewNoop(), quotaCtrl, repo)
	adminService := service.NewAdminService(repo)

	conversationHandler := api.NewConversationHandler(conversationService)
	adminHandler := api.NewAdminHandler(adminService, cfg.AdminToken)
	router := api.NewRouter(conversationHandler, adminHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // request timeouts are set per route group
		IdleTimeout:       120 * time.Second,
	}

	return &App{Config: cfg, DB: db, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to assemble application", "error", err)
		return 1
	}
	if app.DB != nil {
		defer func() {
			if err := app.DB.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
	}

	slog.Info("Starting server", "port", cfg.AppPort, "model", cfg.GenAIModel)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
