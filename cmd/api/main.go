package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/anjarmara/skinsight/internal/application"
	appanalysis "github.com/anjarmara/skinsight/internal/application/analysis"
	appauth "github.com/anjarmara/skinsight/internal/application/auth"
	"github.com/anjarmara/skinsight/internal/config"
	domanalysis "github.com/anjarmara/skinsight/internal/domain/analysis"
	domusers "github.com/anjarmara/skinsight/internal/domain/users"
	aiopenai "github.com/anjarmara/skinsight/internal/infra/ai/openai"
	infraauth "github.com/anjarmara/skinsight/internal/infra/auth"
	mysqldb "github.com/anjarmara/skinsight/internal/infra/db/mysql"
	postgresdb "github.com/anjarmara/skinsight/internal/infra/db/postgres"
	"github.com/anjarmara/skinsight/internal/infra/httpserver"
	minioStore "github.com/anjarmara/skinsight/internal/infra/storage"
	"github.com/anjarmara/skinsight/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database, driver selected by config
	var (
		db           *sql.DB
		analysisRepo domanalysis.Repository
		userRepo     domusers.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		analysisRepo = postgresdb.NewAnalysisRepository(db)
		userRepo = postgresdb.NewUserRepository(db)
	default:
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		analysisRepo = mysqldb.NewAnalysisRepository(db)
		userRepo = mysqldb.NewUserRepository(db)
	}
	defer db.Close()

	// init label store (optional)
	var labels appanalysis.LabelStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		labels = store
	}

	// init LLM client
	llm := aiopenai.NewClient(aiopenai.Config{
		BaseURL:     cfg.OpenAI.BaseURL,
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		VisionModel: cfg.OpenAI.VisionModel,
		Temperature: cfg.OpenAI.Temperature,
	})

	// init token manager
	tokens := infraauth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// init services
	analysisSvc := &appanalysis.Service{
		Analyses:  analysisRepo,
		Users:     userRepo,
		Analyzer:  llm,
		Extractor: llm,
		Labels:    labels,
		Clock:     application.SystemClock{},
	}
	authSvc := &appauth.Service{
		Users:  userRepo,
		Tokens: tokens,
		Clock:  application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(analysisSvc, authSvc,
		middleware.JWTAuth(tokens),
		middleware.RateLimitMiddleware(30, 1),
	))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // analysis requests wait on the LLM
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
