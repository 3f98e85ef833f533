package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	localBlob "cragboard/internal/adapters/blob/local"
	s3Blob "cragboard/internal/adapters/blob/s3"
	emailPkg "cragboard/internal/adapters/email"
	web "cragboard/internal/adapters/http"
	"cragboard/internal/adapters/http/perf"
	"cragboard/internal/adapters/storage"
	accountStore "cragboard/internal/adapters/storage/account"
	ascentStore "cragboard/internal/adapters/storage/ascent"
	climbStore "cragboard/internal/adapters/storage/climb"
	colourStore "cragboard/internal/adapters/storage/colour"
	profileStore "cragboard/internal/adapters/storage/profile"
	wallStore "cragboard/internal/adapters/storage/wall"
	"cragboard/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys and busy timeout for concurrent board reads
	dbPath := envOrDefault("CRAGBOARD_DB", "cragboard.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	profStore := profileStore.NewSQLiteStore(timedDB)
	wlStore := wallStore.NewSQLiteStore(timedDB)
	colStore := colourStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore: acctStore,
		ProfileStore: profStore,
		WallStore:    wlStore,
		ColourStore:  colStore,
		ClimbStore:   climbStore.NewSQLiteStore(timedDB),
		AscentStore:  ascentStore.NewSQLiteStore(timedDB),
	}

	ctx := context.Background()

	// Seed walls and colours on an empty database
	if err := orchestrators.ExecuteSeedReferenceData(ctx, orchestrators.SeedReferenceDataDeps{
		WallStore:   wlStore,
		ColourStore: colStore,
	}); err != nil {
		log.Fatalf("failed to seed reference data: %v", err)
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("CRAGBOARD_ADMIN_EMAIL", "admin@cragboard.nz")
	adminPassword := envOrDefault("CRAGBOARD_ADMIN_PASSWORD", "Crimpy start")
	if err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.SeedAdminDeps{
		AccountStore: acctStore,
		ProfileStore: profStore,
	}, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("CRAGBOARD_RESEND_KEY")
	emailFrom := envOrDefault("CRAGBOARD_RESEND_FROM", "Cragboard <noreply@cragboard.nz>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("CRAGBOARD_ENV") == "production" {
			log.Println("WARNING: CRAGBOARD_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CRAGBOARD_RESEND_KEY for real delivery)")
		}
	}

	// Configure photo storage: S3 in production, local filesystem otherwise
	uploadsDir := ""
	switch envOrDefault("CRAGBOARD_BLOB_DRIVER", "local") {
	case "s3":
		store, err := s3Blob.OpenFromEnv(ctx)
		if err != nil {
			log.Fatalf("failed to open s3 photo store: %v", err)
		}
		web.SetBlobStore(store)
		log.Println("Photo storage configured (S3)")
	default:
		uploadsDir = envOrDefault("CRAGBOARD_UPLOADS_DIR", "uploads")
		store, err := localBlob.New(uploadsDir, "/uploads")
		if err != nil {
			log.Fatalf("failed to open local photo store: %v", err)
		}
		web.SetBlobStore(store)
		log.Println("Photo storage configured (local filesystem)")
	}

	web.SetBaseURL(envOrDefault("CRAGBOARD_BASE_URL", "http://localhost:8080"))

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", uploadsDir, stores, collector)

	addr := envOrDefault("CRAGBOARD_ADDR", ":8080")
	log.Printf("Cragboard %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("CRAGBOARD_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
