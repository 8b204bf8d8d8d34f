package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/idgen"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/schema"
	"github.com/quizforge/quizforge/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- Catalog backend ---
	var dir catalog.Directory
	switch cfg.CatalogDriver {
	case "http":
		dir = catalog.NewHTTPDirectory(cfg.CatalogBaseURL, cfg.FetchTimeout)
	case "sqlite", "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := catalog.Open(ctx, catalog.Driver(cfg.CatalogDriver), cfg.CatalogDSN)
		if err != nil {
			log.Fatalf("catalog open failed: %v", err)
		}
		dir = catalog.NewSQLDirectory(db, cfg.CatalogDSN)
	default:
		log.Fatalf("unknown catalog driver %q", cfg.CatalogDriver)
	}

	// --- Core wiring ---
	validator, err := schema.NewCUEValidator()
	if err != nil {
		log.Fatalf("schema validator: %v", err)
	}
	ids := idgen.NewUUIDSource()
	reg := session.NewRegistry(func() *quiz.Store {
		return quiz.NewStore(validator, ids, dir)
	})

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.MountSessions(r, reg)

	log.Printf("gateway listening on %s (catalog driver: %s)", cfg.HTTPAddr, cfg.CatalogDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}
