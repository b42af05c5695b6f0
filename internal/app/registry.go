package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cdbl-lms/internal/audit"
	"cdbl-lms/internal/auth"
	"cdbl-lms/internal/balance"
	"cdbl-lms/internal/department"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/holiday"
	"cdbl-lms/internal/jobs"
	"cdbl-lms/internal/leave"
	"cdbl-lms/internal/messaging/kafka"
	"cdbl-lms/internal/middleware"
	"cdbl-lms/internal/notification"
	"cdbl-lms/internal/policy"
	"cdbl-lms/internal/rbac"
	"cdbl-lms/internal/rbac/infra"
	"cdbl-lms/internal/rbac/rbac_http"
	"cdbl-lms/internal/report"
	"cdbl-lms/internal/shared/counter"
	"cdbl-lms/internal/shared/ratelimit"
	"cdbl-lms/internal/user"
)

const (
	loginLimit  = 10
	loginWindow = time.Minute
)

// Modules holds the services of every module, built once per process.
type Modules struct {
	RBAC         rbac.Service
	Auth         auth.Service
	Users        user.Service
	Departments  department.Service
	Policies     policy.Service
	Holidays     holiday.Service
	Audit        audit.Service
	AuditLog     audit.Recorder
	Balances     balance.Service
	Notification notification.Service
	Leaves       leave.Service
	Jobs         jobs.Runner
	Reports      report.Service
}

// NewModules builds repositories and services. Lifecycle events go to the
// outbox when Kafka brokers are configured and straight to the inbox
// otherwise.
func NewModules(in *Infra) (*Modules, error) {
	logger := in.Logger
	gormDB, sqlDB := in.GormDB, in.SQLDB

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, domain.Capabilities, logger)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	recorder := audit.NewRecorder(auditRepo, logger)
	policyService := policy.NewService(sqlDB, policyRepo, in.Redis, recorder, logger)
	holidayService := holiday.NewService(sqlDB, holidayRepo, recorder, logger)
	balanceService := balance.NewService(sqlDB, balanceRepo, policyService, recorder, logger)
	notificationService := notification.NewService(notificationRepo, notification.NewUserDirectory(userRepo), logger)

	notifier := notification.NewDirectNotifier(notificationService)
	if len(in.Config.Kafka.Brokers) > 0 {
		notifier = notification.NewOutboxNotifier(kafka.NewOutboxRepository(sqlDB))
	}

	leaveService := leave.NewService(sqlDB, leaveRepo, leave.Dependencies{
		Directory: leave.NewDirectory(userRepo, departmentRepo),
		Policies:  policyService,
		Calendar:  holidayService,
		Ledger:    balanceService,
		Counter:   counterRepo,
		Audit:     recorder,
		Notifier:  notifier,
	}, logger)

	return &Modules{
		RBAC:         rbacService,
		Auth:         auth.NewService(userRepo, rbacService, in.Config.Auth, logger),
		Users:        user.NewService(userRepo, logger),
		Departments:  department.NewService(sqlDB, departmentRepo, in.Redis, logger),
		Policies:     policyService,
		Holidays:     holidayService,
		Audit:        audit.NewService(auditRepo, logger),
		AuditLog:     recorder,
		Balances:     balanceService,
		Notification: notificationService,
		Leaves:       leaveService,
		Jobs: jobs.NewRunner(jobs.Dependencies{
			Users:    userRepo,
			Leaves:   leaveRepo,
			Ledger:   balanceService,
			Policies: policyService,
			Audit:    recorder,
		}, logger),
		Reports: report.NewService(leaveRepo, userRepo, departmentRepo, logger),
	}, nil
}

// SeedPolicies makes sure every leave type has a policy row.
func (m *Modules) SeedPolicies(ctx context.Context, logger *zap.Logger) error {
	n, err := m.Policies.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("default leave policies seeded", zap.Int("count", n))
	}
	return nil
}

func registerRoutes(router *gin.Engine, in *Infra, m *Modules) error {
	cfg := in.Config
	logger := in.Logger

	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if in.Redis != nil {
		store = ratelimit.NewFallbackStore(ratelimit.NewRedisStore(in.Redis), store, logger)
	}

	authMW := middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	idempotency := middleware.Idempotency(in.Redis, logger)

	router.Use(middleware.RequestID(), middleware.ContextLogger(logger))

	// --- Handlers ---
	authHandler := auth.NewHandler(m.Auth, cfg.Auth)
	rbacHandler := rbac.NewHandler(m.RBAC)
	userHandler := user.NewHandler(m.Users, logger)
	departmentHandler := department.NewHandler(m.Departments)
	policyHandler := policy.NewHandler(m.Policies, logger)
	holidayHandler := holiday.NewHandler(m.Holidays)
	auditHandler := audit.NewHandler(m.Audit)
	balanceHandler := balance.NewHandler(m.Balances, logger)
	notificationHandler := notification.NewHandler(m.Notification, logger)
	leaveHandler := leave.NewHandler(m.Leaves, logger)
	jobsHandler := jobs.NewHandler(m.Jobs, logger)
	reportHandler := report.NewHandler(m.Reports, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1", middleware.RateLimitByIP(store, cfg.RateLimit.Requests, cfg.RateLimit.Window))
	{
		auth.RegisterRoutes(api, authHandler, authMW, middleware.RateLimitByIP(store, loginLimit, loginWindow))
		rbac_http.RegisterRoutes(api, rbacHandler, m.RBAC, authMW)
		user.RegisterRoutes(api, userHandler, m.RBAC, authMW)
		department.RegisterRoutes(api, departmentHandler, m.RBAC, authMW)
		policy.RegisterRoutes(api, policyHandler, m.RBAC, authMW)
		holiday.RegisterRoutes(api, holidayHandler, m.RBAC, authMW)
		audit.RegisterRoutes(api, auditHandler, m.RBAC, authMW)
		balance.RegisterRoutes(api, balanceHandler, m.RBAC, authMW)
		notification.RegisterRoutes(api, notificationHandler, m.RBAC, authMW)
		leave.RegisterRoutes(api, leaveHandler, m.RBAC, authMW, idempotency)
		jobs.RegisterRoutes(api, jobsHandler, m.RBAC, authMW, cfg.Jobs.CronSecret)
		report.RegisterRoutes(api, reportHandler, m.RBAC, authMW)
	}

	return nil
}
