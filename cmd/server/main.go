package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	emailPkg "habitloop/internal/adapters/email"
	web "habitloop/internal/adapters/http"
	"habitloop/internal/adapters/storage"
	catalogStorePkg "habitloop/internal/adapters/storage/catalog"
	progressStorePkg "habitloop/internal/adapters/storage/progress"
	revisionStorePkg "habitloop/internal/adapters/storage/revision"
	"habitloop/internal/application/orchestrators"
	"habitloop/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.Storage.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db, cfg.Storage.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Wrap DB with slow-query instrumentation
	timedDB := storage.NewTimedDB(db)

	catStore := catalogStorePkg.NewFileStore(cfg.Storage.TasksPath)
	stores := &web.Stores{
		ProgressStore: progressStorePkg.NewSQLiteStore(timedDB),
		CatalogStore:  catStore,
		RevisionStore: revisionStorePkg.NewSQLiteStore(timedDB),
	}

	// Seed the default program if no tasks file exists yet
	seedDeps := orchestrators.SeedCatalogDeps{CatalogStore: catStore}
	if err := orchestrators.ExecuteSeedCatalog(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed task catalog: %v", err)
	}

	// Configure email sender
	if cfg.Email.APIKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.Email.APIKey, cfg.Email.From), cfg.Email.From, cfg.Email.ReplyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.Email.From, cfg.Email.ReplyTo)
		if cfg.Env == "production" {
			log.Println("WARNING: HABITLOOP_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set HABITLOOP_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(web.Options{
		StaticDir:    cfg.Server.StaticDir,
		SessionKey:   cfg.Keys.SessionKey,
		CSRFKey:      cfg.Keys.CSRFKey,
		PremiumCode:  cfg.Codes.Premium,
		AdminCode:    cfg.Codes.Admin,
		CheckoutLink: cfg.CheckoutLink,
		Production:   cfg.Env == "production",
	}, stores)

	log.Printf("Habitloop %s starting on %s (env=%s, schema=%d)", version, cfg.Server.Addr, cfg.Env, storage.LatestSchemaVersion())
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
