package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	attendanceapp "github.com/clubops/backend/internal/application/attendance"
	identityapp "github.com/clubops/backend/internal/application/identity"
	rosterapp "github.com/clubops/backend/internal/application/roster"
	"github.com/clubops/backend/internal/infrastructure/auth"
	"github.com/clubops/backend/internal/infrastructure/cache"
	"github.com/clubops/backend/internal/infrastructure/config"
	"github.com/clubops/backend/internal/infrastructure/logger"
	"github.com/clubops/backend/internal/infrastructure/persistence"
	"github.com/clubops/backend/internal/interfaces/http/handler"
	"github.com/clubops/backend/internal/interfaces/http/middleware"
	"github.com/clubops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	sportRepo := persistence.NewGormSportRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	recordRepo := persistence.NewGormRecordRepository(db.DB)

	// Token handling: Redis-backed blacklist with an in-memory fallback so a
	// missing Redis never blocks startup in development
	jwtService := auth.NewJWTService(cfg.JWT)
	var tokenBlacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn("redis unavailable for token blacklist, using in-memory store", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
	}

	locationCache, err := cache.NewLocationCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("failed to create tenant location cache", zap.Error(err))
	}

	defaultLoc, err := time.LoadLocation(cfg.Attendance.DefaultTimezone)
	if err != nil {
		log.Warn("invalid default timezone, falling back to UTC",
			zap.String("timezone", cfg.Attendance.DefaultTimezone))
		defaultLoc = time.UTC
	}

	// Application services
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, log)
	userService := identityapp.NewUserService(userRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxFailedAttempts,
		LockDuration:     cfg.Auth.LockoutDuration,
	}, log)
	sportService := rosterapp.NewSportService(sportRepo, batchRepo, log)
	batchService := rosterapp.NewBatchService(batchRepo, sportRepo, studentRepo, userRepo, log)
	studentService := rosterapp.NewStudentService(studentRepo, sportRepo, batchRepo, log)
	attendanceService := attendanceapp.NewAttendanceService(
		recordRepo, tenantRepo, userRepo, studentRepo, batchRepo, locationCache, defaultLoc, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	userHandler := handler.NewUserHandler(userService)
	sportHandler := handler.NewSportHandler(sportService)
	batchHandler := handler.NewBatchHandler(batchService)
	studentHandler := handler.NewStudentHandler(studentService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		// Credential endpoints get a stricter per-client limit than the
		// global one to slow down brute-force attempts
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.POST("/login", middleware.AuthRateLimit(authLimiter), authHandler.Login)
		authRoutes.POST("/refresh", middleware.AuthRateLimit(authLimiter), authHandler.RefreshToken)
	} else {
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.RefreshToken)
	}
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)
	authRoutes.POST("/force-logout/:id", middleware.RequireSuperAdmin(), authHandler.ForceLogout)

	tenantRoutes := router.NewDomainGroup("tenants", "/tenants")
	tenantRoutes.Use(middleware.RequireSuperAdmin())
	tenantRoutes.POST("", tenantHandler.Create)
	tenantRoutes.GET("", tenantHandler.List)
	tenantRoutes.GET("/stats", tenantHandler.GetStats)
	tenantRoutes.GET("/subdomain/:subdomain", tenantHandler.GetBySubdomain)
	tenantRoutes.GET("/:id", tenantHandler.GetByID)
	tenantRoutes.PUT("/:id", tenantHandler.Update)
	tenantRoutes.PUT("/:id/plan", tenantHandler.SetPlan)
	tenantRoutes.POST("/:id/activate", tenantHandler.Activate)
	tenantRoutes.POST("/:id/deactivate", tenantHandler.Deactivate)
	tenantRoutes.POST("/:id/suspend", tenantHandler.Suspend)
	tenantRoutes.POST("/:id/admin", tenantHandler.CreateClubAdmin)
	tenantRoutes.DELETE("/:id", tenantHandler.Delete)

	// Club admins read their own tenant profile here; the static /me
	// segment takes priority over the super-admin /:id routes above
	tenantSelfRoutes := router.NewDomainGroup("tenant-self", "/tenants")
	tenantSelfRoutes.Use(middleware.RequireClubAdmin())
	tenantSelfRoutes.GET("/me", tenantHandler.GetMine)

	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(middleware.RequireClubAdmin())
	userRoutes.POST("/coaches", userHandler.CreateCoach)
	userRoutes.GET("/coaches", userHandler.ListCoaches)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.POST("/:id/unlock", userHandler.Unlock)
	userRoutes.PUT("/:id/password", userHandler.ResetPassword)
	userRoutes.DELETE("/:id", userHandler.Delete)

	sportRoutes := router.NewDomainGroup("sports", "/sports")
	sportRoutes.Use(middleware.RequireClubAdmin())
	sportRoutes.POST("", sportHandler.Create)
	sportRoutes.GET("", sportHandler.List)
	sportRoutes.GET("/:id", sportHandler.GetByID)
	sportRoutes.PUT("/:id", sportHandler.Update)
	sportRoutes.POST("/:id/activate", sportHandler.Activate)
	sportRoutes.POST("/:id/deactivate", sportHandler.Deactivate)
	sportRoutes.DELETE("/:id", sportHandler.Delete)

	batchRoutes := router.NewDomainGroup("batches", "/batches")
	batchRoutes.Use(middleware.RequireClubAdmin())
	batchRoutes.POST("", batchHandler.Create)
	batchRoutes.GET("", batchHandler.List)
	batchRoutes.GET("/:id", batchHandler.GetByID)
	batchRoutes.PUT("/:id", batchHandler.Update)
	batchRoutes.PUT("/:id/sport", batchHandler.ChangeSport)
	batchRoutes.POST("/:id/coaches/:coach_id", batchHandler.AssignCoach)
	batchRoutes.DELETE("/:id/coaches/:coach_id", batchHandler.RemoveCoach)
	batchRoutes.POST("/:id/students/:student_id", batchHandler.AssignStudent)
	batchRoutes.DELETE("/:id/students/:student_id", batchHandler.RemoveStudent)
	batchRoutes.DELETE("/:id", batchHandler.Delete)

	studentRoutes := router.NewDomainGroup("students", "/students")
	studentRoutes.Use(middleware.RequireClubAdmin())
	studentRoutes.POST("", studentHandler.Create)
	studentRoutes.GET("", studentHandler.List)
	studentRoutes.GET("/:id", studentHandler.GetByID)
	studentRoutes.PUT("/:id", studentHandler.Update)
	studentRoutes.PUT("/:id/date-of-birth", studentHandler.SetDateOfBirth)
	studentRoutes.PUT("/:id/fee-status", studentHandler.SetFeeStatus)
	studentRoutes.POST("/:id/sports/:sport_id", studentHandler.AddSport)
	studentRoutes.DELETE("/:id/sports/:sport_id", studentHandler.RemoveSport)
	studentRoutes.DELETE("/:id", studentHandler.Delete)

	attendanceRoutes := router.NewDomainGroup("attendance", "/attendance")
	attendanceRoutes.Use(middleware.RequireClubStaff())
	attendanceRoutes.POST("", attendanceHandler.Mark)
	attendanceRoutes.POST("/bulk", attendanceHandler.BulkMark)
	attendanceRoutes.PUT("/:id", attendanceHandler.UpdateStatus)
	attendanceRoutes.GET("/today", attendanceHandler.Today)
	attendanceRoutes.GET("", attendanceHandler.ByDateRange)
	attendanceRoutes.GET("/summary/monthly", attendanceHandler.MonthlySummary)
	attendanceRoutes.GET("/report/:id", attendanceHandler.EntityReport)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(tenantRoutes).
		Register(tenantSelfRoutes).
		Register(userRoutes).
		Register(sportRoutes).
		Register(batchRoutes).
		Register(studentRoutes).
		Register(attendanceRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Error("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
