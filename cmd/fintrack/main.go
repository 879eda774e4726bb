package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/repository"
	"fintrack/internal/repository/db"
	"fintrack/internal/server"
	"fintrack/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort     = "8080"
	defaultDBPath   = "fintrack.db"
	defaultTTLHours = 24

	shutdownTimeout = 10 * time.Second
)

func main() {
	// .env first so the config layer can pick up exported secrets.
	_ = godotenv.Load()

	if err := loadConfig(); err != nil {
		// Logger level lives in the config, so fall back to a default one.
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	secret := viper.GetString("jwt.secret")
	if secret == "" {
		// No insecure fallback: refusing to sign tokens with a guessable key.
		log.Fatalw("JWT_SECRET_KEY must be set")
	}

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
	services := service.NewService(repos, service.Config{
		TokenSecret: secret,
		TokenTTL:    tokenTTL(),
	})
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.BindEnv("jwt.secret", "JWT_SECRET_KEY"); err != nil {
		return err
	}
	return viper.ReadInConfig()
}

func tokenTTL() time.Duration {
	hours := viper.GetInt("token.ttl_hours")
	if hours <= 0 {
		hours = defaultTTLHours
	}
	return time.Duration(hours) * time.Hour
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", defaultDBPath)
		dbPath = defaultDBPath
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = defaultPort
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
