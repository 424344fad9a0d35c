package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"usdh/internal/adapters/email"
	"usdh/internal/adapters/files"
	web "usdh/internal/adapters/http"
	"usdh/internal/adapters/http/perf"
	"usdh/internal/adapters/pdf"
	"usdh/internal/adapters/scan"
	"usdh/internal/adapters/storage"
	accountStore "usdh/internal/adapters/storage/account"
	auditStore "usdh/internal/adapters/storage/audit"
	"usdh/internal/adapters/storage/catalog"
	certificateStore "usdh/internal/adapters/storage/certificate"
	courseStore "usdh/internal/adapters/storage/course"
	liveStore "usdh/internal/adapters/storage/live"
	progressStore "usdh/internal/adapters/storage/progress"
	resourceStore "usdh/internal/adapters/storage/resource"
	resumeStore "usdh/internal/adapters/storage/resume"
	schemeStore "usdh/internal/adapters/storage/scheme"
	studyPlanStore "usdh/internal/adapters/storage/studyplan"
	userFileStore "usdh/internal/adapters/storage/userfile"
	"usdh/internal/application/orchestrators"
	"usdh/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownGrace bounds how long in-flight requests may run after a signal.
const shutdownGrace = 10 * time.Second

func main() {
	configFile := flag.String("config", "", "path to a usdh.yaml file (default: ./usdh.yaml if present)")
	envFile := flag.String("env-file", "", "path to a .env file (default: ./.env if present)")
	flag.Parse()

	if err := run(*configFile, *envFile); err != nil {
		slog.Error("server_exit", "error", err.Error())
		os.Exit(1)
	}
}

func run(configFile, envFile string) error {
	cfg, err := config.Load(config.Options{EnvFile: envFile, ConfigFile: configFile})
	if err != nil {
		return err
	}
	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.Database.Path, cfg.Database.MaxConns)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("db_event", "event", "opened", "path", cfg.Database.Path)

	// Performance instrumentation: wrap DB with timing, share collector with the router
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.Database.SlowQuery)

	stores := &web.Stores{
		Catalog:       catalog.NewReader(timedDB),
		Accounts:      accountStore.NewSQLiteStore(timedDB),
		Courses:       courseStore.NewSQLiteStore(timedDB),
		SchoolCourses: courseStore.NewSchoolSQLiteStore(timedDB),
		EResources:    resourceStore.NewSQLiteStore(timedDB),
		Schemes:       schemeStore.NewSQLiteStore(timedDB),
		LiveClasses:   liveStore.NewSQLiteStore(timedDB),
		Progress:      progressStore.NewSQLiteStore(timedDB),
		Files:         userFileStore.NewSQLiteStore(timedDB),
		Certificates:  certificateStore.NewSQLiteStore(timedDB),
		StudyPlans:    studyPlanStore.NewSQLiteStore(timedDB),
		Resumes:       resumeStore.NewSQLiteStore(timedDB),
		Audit:         auditStore.NewSQLiteStore(timedDB),
	}

	services, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}

	if err := seed(ctx, cfg, stores); err != nil {
		return err
	}

	csrfKey, err := cfg.CSRFKey()
	if err != nil {
		return err
	}
	if csrfKey == nil {
		// development only; Validate refuses a missing key in production
		csrfKey = make([]byte, 32)
		rand.Read(csrfKey)
		slog.Warn("config_event", "event", "ephemeral_csrf_key", "hint", "set USDH_CSRF_KEY to keep forms valid across restarts")
	}

	handler := web.NewRouter(ctx, stores, services, collector, web.Options{
		StaticDir:     cfg.Server.StaticDir,
		CSRFKey:       csrfKey,
		SecureCookies: cfg.IsProduction(),
		RateLimit:     cfg.Server.RateLimit,
		SlowRequest:   cfg.Server.SlowRequest,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_event", "event", "listening", "addr", cfg.Server.Addr, "version", version, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server_event", "event", "shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupLogging(lc config.LogConfig) {
	level, _ := config.ParseLevel(lc.Level) // validated by config.Load
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if lc.Format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// buildServices picks the blob backend, virus scanner, PDF renderer and mailer.
func buildServices(ctx context.Context, cfg *config.Config) (*web.Services, error) {
	svc := &web.Services{PDFTimeout: cfg.PDF.Timeout}

	switch cfg.Files.Backend {
	case config.BackendMinIO:
		store, err := files.NewMinIOStore(ctx, files.MinIOConfig{
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKeyID,
			SecretAccessKey: cfg.MinIO.SecretAccessKey,
			Bucket:          cfg.MinIO.Bucket,
			Region:          cfg.MinIO.Region,
			UseSSL:          cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		svc.Blobs = store
	default:
		store, err := files.NewLocalStore(cfg.Files.Root)
		if err != nil {
			return nil, err
		}
		svc.Blobs = store
	}
	slog.Info("config_event", "event", "files_backend", "backend", cfg.Files.Backend)

	if cfg.Scan.ClamdAddr != "" {
		svc.Scanner = scan.NewClamd(cfg.Scan.ClamdAddr)
		slog.Info("config_event", "event", "virus_scan", "clamd", cfg.Scan.ClamdAddr)
	} else {
		svc.Scanner = scan.Noop{}
		slog.Warn("config_event", "event", "virus_scan_disabled")
	}

	if cfg.PDF.Enabled {
		svc.PDF = pdf.Chromium{Bin: cfg.PDF.ChromeBin, Timeout: cfg.PDF.Timeout}
	} else {
		svc.PDF = pdf.Disabled{}
	}

	if cfg.Email.ResendKey != "" {
		svc.Mailer = email.NewResendSender(cfg.Email.ResendKey, cfg.Email.From)
		slog.Info("config_event", "event", "email_sender", "sender", "resend")
	} else {
		svc.Mailer = email.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("config_event", "event", "email_disabled", "hint", "set USDH_EMAIL_RESEND_KEY for real delivery")
		}
	}
	return svc, nil
}

// seed creates the configured admin and fills empty catalogs.
func seed(ctx context.Context, cfg *config.Config, s *web.Stores) error {
	if _, err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.SeedAdminInput{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, orchestrators.SeedAdminDeps{AccountStore: s.Accounts, Now: time.Now}); err != nil {
		return err
	}
	if !cfg.Seed.Catalog {
		return nil
	}
	_, err := orchestrators.ExecuteSeedCatalog(ctx, orchestrators.SeedCatalogDeps{
		Counter:       s.Catalog,
		Courses:       s.Courses,
		SchoolCourses: s.SchoolCourses,
		EResources:    s.EResources,
		Schemes:       s.Schemes,
		LiveClasses:   s.LiveClasses,
	})
	return err
}
