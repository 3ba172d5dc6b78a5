package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/auth"
	"github.com/navbryce/yatube/cache"
	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db/sqldb"
	"github.com/navbryce/yatube/logs"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/routes"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}
	if err := logs.Setup(&cfg.Log); err != nil {
		log.Fatal("an error occurred while configuring logging: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqldb.GetDatabase(&cfg.DB)
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB ", err)
	}
	defer db.Close()

	var app *firebase.App
	if cfg.NeedsFirebase() {
		if err := configureFirebaseCredentials(); err != nil {
			log.Fatal("an error occurred while configuring firebase credentials ", err)
		}
		if app, err = firebase.NewApp(ctx, nil); err != nil {
			log.Fatalf("error initializing firebase: %v\n", err)
		}
	}

	authConfig := &middleware.AuthConfig{CookieSecure: cfg.Auth.CookieSecure}
	env := &routes.Env{
		DB:       db,
		Auth:     authConfig,
		CacheTTL: cfg.Cache.TTL,
		PerPage:  cfg.PerPage,
	}
	switch cfg.Auth.Provider {
	case config.AuthLocal:
		env.Local = auth.NewLocalProvider(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
		authConfig.Provider = env.Local
	case config.AuthFirebase:
		authClient, err := app.Auth(ctx)
		if err != nil {
			log.Fatal("error initializing auth client ", err)
		}
		env.Firebase = auth.NewFirebaseProvider(authClient, cfg.Auth.SessionTTL)
		authConfig.Provider = env.Firebase
	}

	if env.Media, err = services.NewMediaStorage(ctx, &cfg.Media, app); err != nil {
		log.Fatal("An error occurred while connecting to the media storage ", err)
	}
	if cfg.Media.Backend == config.MediaLocal {
		env.MediaRoot = cfg.Media.Root
	}
	if env.Cache, err = cache.New(ctx, &cfg.Cache); err != nil {
		log.Fatal("An error occurred while connecting to the page cache ", err)
	}
	if env.Groups, err = controllers.NewGroupController(ctx, db, cfg.GroupRefresh); err != nil {
		log.Fatal("An error occurred while initializing the group controller ", err)
	}
	templates, err := web.Templates()
	if err != nil {
		log.Fatal("An error occurred while parsing the templates ", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(routes.Recovery())
	r.Use(middleware.SecureHeaders())
	if len(cfg.FEOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.FEOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.SetHTMLTemplate(templates)
	routes.Register(r, env)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("an error occurred while shutting down", "err", err)
		}
	}()

	slog.Info("listening", "port", cfg.Port, "db", cfg.DB.Driver, "auth", cfg.Auth.Provider, "media", cfg.Media.Backend, "cache", cfg.Cache.Backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Error when attempting to run web server ", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		slog.Info("credentials path detected in env", "path", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		slog.Info("credentials JSON string detected in env")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0o400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
