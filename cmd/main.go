package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"home_inventory/internal/handlers"
	"home_inventory/internal/logger"
	"home_inventory/internal/repository"
	"home_inventory/internal/repository/db"
	"home_inventory/internal/server"
	"home_inventory/internal/service"
)

const (
	dbConnectAttempts = 3
	dbConnectBackoff  = 5 * time.Second
)

func main() {
	// load config.yml first so the log level is configurable
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	signingKey := viper.GetString("jwt.signing_key")
	if signingKey == "" {
		log.Fatalw("jwt.signing_key is not set; refusing to issue unsigned tokens")
	}

	// open DB; the process must not accept traffic while unable to persist
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.AuthConfig{
		SigningKey: []byte(signingKey),
		TokenTTL:   viper.GetDuration("jwt.ttl"),
	})
	apiHandler := handlers.NewHandler(services, log, viper.GetStringSlice("cors.allowed_origins"))

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", "8080")
	viper.SetDefault("db.path", "inventory.db")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("jwt.ttl", "24h")

	// secrets may come from the environment, e.g. HOMEINV_JWT_SIGNING_KEY
	viper.SetEnvPrefix("homeinv")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil // defaults + env are enough
		}
		return err
	}
	return nil
}

// openDB initializes SQLite, retrying with backoff before giving up.
func openDB(log *logger.Logger) (*sql.DB, error) {
	path := viper.GetString("db.path")

	var (
		conn *sql.DB
		err  error
	)
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		conn, err = db.InitDB(path)
		if err == nil {
			return conn, nil
		}
		log.Warnw("sqlite not ready", "attempt", attempt, "path", path, "err", err)
		if attempt < dbConnectAttempts {
			time.Sleep(dbConnectBackoff)
		}
	}
	return nil, err
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
