package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"camphq/internal/adapters/email"
	"camphq/internal/adapters/http/middleware"
	"camphq/internal/adapters/http/perf"
	accountStore "camphq/internal/adapters/storage/account"
	announcementStore "camphq/internal/adapters/storage/announcement"
	campStore "camphq/internal/adapters/storage/camp"
	exceptionStore "camphq/internal/adapters/storage/exception"
	organizationStore "camphq/internal/adapters/storage/organization"
	registrationStore "camphq/internal/adapters/storage/registration"
	scheduleStore "camphq/internal/adapters/storage/schedule"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	OrganizationStore organizationStore.Store
	CampStore         campStore.Store
	ScheduleStore     scheduleStore.Store
	ExceptionStore    exceptionStore.Store
	RegistrationStore registrationStore.Store
	AnnouncementStore announcementStore.Store
}

// loadCSRFKey reads the CSRF secret from CAMPHQ_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CAMPHQ_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CAMPHQ_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CAMPHQ_ENV") == "production" {
		log.Fatal("CAMPHQ_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CAMPHQ_CSRF_KEY for production.")
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

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CAMPHQ_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
