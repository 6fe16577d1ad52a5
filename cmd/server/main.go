package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "camphq/internal/adapters/email"
	web "camphq/internal/adapters/http"
	"camphq/internal/adapters/http/perf"
	"camphq/internal/adapters/storage"
	accountStore "camphq/internal/adapters/storage/account"
	announcementStore "camphq/internal/adapters/storage/announcement"
	campStore "camphq/internal/adapters/storage/camp"
	exceptionStore "camphq/internal/adapters/storage/exception"
	organizationStore "camphq/internal/adapters/storage/organization"
	registrationStore "camphq/internal/adapters/storage/registration"
	scheduleStore "camphq/internal/adapters/storage/schedule"
	"camphq/internal/application/orchestrators"
	organizationDomain "camphq/internal/domain/organization"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	env := envOrDefault("CAMPHQ_ENV", "development")
	setupLogging(env)

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CAMPHQ_DB", "camphq.db")
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

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	orgStore := organizationStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:      acctStore,
		OrganizationStore: orgStore,
		CampStore:         campStore.NewSQLiteStore(timedDB),
		ScheduleStore:     scheduleStore.NewSQLiteStore(timedDB),
		ExceptionStore:    exceptionStore.NewSQLiteStore(timedDB),
		RegistrationStore: registrationStore.NewSQLiteStore(timedDB),
		AnnouncementStore: announcementStore.NewSQLiteStore(timedDB),
	}

	// Seed the default organization and admin account on first start
	orgID, err := seedOrganization(context.Background(), orgStore)
	if err != nil {
		log.Fatalf("failed to seed organization: %v", err)
	}
	adminEmail := envOrDefault("CAMPHQ_ADMIN_EMAIL", "admin@camphq.app")
	adminPassword := envOrDefault("CAMPHQ_ADMIN_PASSWORD", "change-me-please")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, orgID, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("CAMPHQ_RESEND_API_KEY")
	emailFrom := envOrDefault("CAMPHQ_EMAIL_FROM", "CampHQ <noreply@camphq.app>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if env == "production" {
			log.Println("WARNING: CAMPHQ_RESEND_API_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CAMPHQ_RESEND_API_KEY for real delivery)")
		}
	}

	mux := web.NewMux(stores, collector)

	addr := envOrDefault("CAMPHQ_ADDR", ":8080")
	log.Printf("CampHQ %s starting on %s (env=%s)", version, addr, env)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// seedOrganization creates the default organization if none exists yet and
// returns the ID the admin account should belong to.
func seedOrganization(ctx context.Context, store organizationStore.Store) (string, error) {
	orgs, err := store.List(ctx)
	if err != nil {
		return "", err
	}
	if len(orgs) > 0 {
		return orgs[0].ID, nil
	}
	org := organizationDomain.Organization{
		ID:           uuid.New().String(),
		Name:         envOrDefault("CAMPHQ_ORG_NAME", "CampHQ"),
		ContactEmail: envOrDefault("CAMPHQ_ORG_EMAIL", "info@camphq.app"),
	}
	if err := org.Validate(); err != nil {
		return "", err
	}
	if err := store.Save(ctx, org); err != nil {
		return "", err
	}
	slog.Info("org_event", "action", "organization_seeded", "organization_id", org.ID)
	return org.ID, nil
}

// setupLogging installs the default slog handler. Development gets debug
// level so slow-query and request logs show up.
func setupLogging(env string) {
	level := slog.LevelInfo
	if env != "production" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
