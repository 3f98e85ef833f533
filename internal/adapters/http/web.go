package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"cragboard/internal/adapters/blob"
	"cragboard/internal/adapters/email"
	"cragboard/internal/adapters/http/middleware"
	"cragboard/internal/adapters/http/perf"
	accountStore "cragboard/internal/adapters/storage/account"
	ascentStore "cragboard/internal/adapters/storage/ascent"
	climbStore "cragboard/internal/adapters/storage/climb"
	colourStore "cragboard/internal/adapters/storage/colour"
	profileStore "cragboard/internal/adapters/storage/profile"
	wallStore "cragboard/internal/adapters/storage/wall"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore accountStore.Store
	ProfileStore profileStore.Store
	WallStore    wallStore.Store
	ColourStore  colourStore.Store
	ClimbStore   climbStore.Store
	AscentStore  ascentStore.Store
}

// loadCSRFKey reads the CSRF secret from CRAGBOARD_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CRAGBOARD_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CRAGBOARD_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CRAGBOARD_ENV") == "production" {
		log.Fatal("CRAGBOARD_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CRAGBOARD_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global photo blob store (set by SetBlobStore)
var photoStore blob.Store

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// baseURL is the externally visible address used in verification links.
var baseURL string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// SetBlobStore sets the global photo store for the application.
func SetBlobStore(store blob.Store) {
	photoStore = store
}

// SetBaseURL sets the externally visible server address.
func SetBaseURL(url string) {
	baseURL = url
}

// NewMux wires HTTP handlers for the app. uploadsDir, when non-empty, is
// served under /uploads/ for the filesystem blob driver; S3 URLs are
// presigned and bypass the server.
func NewMux(staticDir, uploadsDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CRAGBOARD_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	if uploadsDir != "" {
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

// registerRoutes attaches all API handlers to the mux.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/api/register", handleRegister)
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/resend-verification", handleResendVerification)
	mux.HandleFunc("/verify", handleVerify)
	mux.HandleFunc("/api/me", handleMe)

	// Board
	mux.HandleFunc("/api/reference", handleReferenceData)
	mux.HandleFunc("/api/climbs", handleClimbs)
	mux.HandleFunc("/api/climbs/", handleClimbByID)
	mux.HandleFunc("/api/sends", handleLogSend)
	mux.HandleFunc("/api/leaderboard", handleLeaderboard)
	mux.HandleFunc("/api/viewer-config", handleViewerConfig)

	// Admin
	mux.HandleFunc("/api/admin/perf", handleAdminPerf)
}
