package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"usdh/internal/adapters/email"
	"usdh/internal/adapters/files"
	"usdh/internal/adapters/http/middleware"
	"usdh/internal/adapters/http/perf"
	"usdh/internal/adapters/pdf"
	"usdh/internal/adapters/scan"
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
	"usdh/internal/application/projections"
)

// Stores holds all storage dependencies.
type Stores struct {
	Catalog       projections.CatalogReader
	Accounts      accountStore.Store
	Courses       courseStore.Store
	SchoolCourses courseStore.SchoolStore
	EResources    resourceStore.Store
	Schemes       schemeStore.Store
	LiveClasses   liveStore.Store
	Progress      progressStore.Store
	Files         userFileStore.Store
	Certificates  certificateStore.Store
	StudyPlans    studyPlanStore.Store
	Resumes       resumeStore.Store
	Audit         auditStore.Store // optional admin activity log
}

// Services holds the non-database collaborators.
type Services struct {
	Blobs      files.Store
	Scanner    scan.Scanner // optional
	PDF        pdf.Renderer // nil disables resume export
	PDFTimeout time.Duration
	Mailer     email.Sender // optional
}

// Options tune the HTTP layer.
type Options struct {
	StaticDir      string // "" serves no static files
	CSRFKey        []byte // nil disables CSRF protection
	SecureCookies  bool
	TrustedOrigins []string
	RateLimit      int // requests per second per client IP
	SlowRequest    time.Duration
}

// Global stores instance (set by NewRouter)
var stores *Stores

// Global services instance (set by NewRouter)
var services *Services

// Global session store instance
var sessions *middleware.SessionStore

// Global perf collector (set by NewRouter)
var perfCollector *perf.Collector

// NewRouter wires the portal's routes and middleware.
// ctx bounds the rate limiter's background sweeper.
func NewRouter(ctx context.Context, s *Stores, svc *Services, collector *perf.Collector, opts Options) http.Handler {
	stores = s
	services = svc
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = opts.SecureCookies

	if opts.RateLimit <= 0 {
		opts.RateLimit = 20
	}
	limiter := middleware.NewRateLimiter(ctx, opts.RateLimit, time.Second)

	r := chi.NewRouter()
	// Timing -> Metrics -> RateLimit -> SecurityHeaders -> CSRF -> Auth -> Guard -> handler
	r.Use(
		middleware.Timing(collector, opts.SlowRequest),
		middleware.Metrics,
		middleware.RateLimit(limiter),
		middleware.SecurityHeaders,
		middleware.CSRF(middleware.CSRFConfig{
			Key:            opts.CSRFKey,
			Secure:         opts.SecureCookies,
			TrustedOrigins: opts.TrustedOrigins,
		}),
		middleware.Auth(sessions),
		middleware.Guard,
	)
	// Unknown paths and methods land on the login page like any other
	// request the caller may not make.
	r.NotFound(sendToLogin)
	r.MethodNotAllowed(sendToLogin)

	if opts.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}
	registerRoutes(r)
	return r
}

func registerRoutes(r chi.Router) {
	r.Get("/", handleHome)
	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	r.Get("/login", handleLoginPage)
	r.Post("/login", handleLogin)
	r.Get("/signup", handleSignupPage)
	r.Post("/signup", handleSignup)
	r.Get("/logout", handleLogout)
	r.Post("/logout", handleLogout)

	// User area
	r.Get("/user", handleUserDashboard)
	r.Post("/user/progress/{courseID}/{action}", handleCourseProgress)
	r.Get("/course/{id}", handleCourseDetail(catalog.TableCourses))
	r.Get("/course2/{id}", handleCourseDetail(catalog.TableSchoolCourses))
	r.Get("/live", handleLiveClasses)

	r.Get("/my-space", handleMySpace)
	r.Post("/my-space/files", handleUploadFile)
	r.Get("/my-space/files/{id}", handleDownloadFile)
	r.Post("/my-space/files/{id}/delete", handleDeleteFile)
	r.Post("/my-space/certificates", handleAddCertificate)
	r.Get("/my-space/certificates/{id}", handleDownloadCertificate)
	r.Post("/my-space/certificates/{id}/delete", handleDeleteCertificate)

	r.Get("/study-plan", handleStudyPlanPage)
	r.Post("/study-plan/generate", handleGenerateStudyPlan)
	r.Post("/study-plan/save", handleSaveStudyPlan)
	r.Get("/study-plan/{id}", handleViewStudyPlan)
	r.Post("/study-plan/{id}/delete", handleDeleteStudyPlan)

	r.Get("/resume-maker", handleResumePage)
	r.Post("/resume-maker/generate", handleGenerateResume)
	r.Post("/resume-maker/certificates", handleResumeCertificate)
	r.Get("/download-resume/{id}", handleDownloadResume)

	r.Get("/profile", handleProfilePage)
	r.Post("/profile/{field}", handleProfileUpdate)

	// Admin area
	r.Get("/admin", handleAdminHome)
	r.Get("/admin/profile", handleProfilePage)
	r.Post("/admin/profile/{field}", handleProfileUpdate)
	r.Get("/analytics", handleAnalytics)
	r.Get("/analytics/chart.png", handleAnalyticsChart)

	mountManage(r, "/manage-courses", courseAdmin(), schoolCourseAdmin())
	mountManage(r, "/manage-resources", eResourceAdmin())
	mountManage(r, "/manage-schemes", schemeAdmin())
	mountManage(r, "/manage-live", liveClassAdmin())
}

func sendToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
