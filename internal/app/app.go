package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"gorm.io/gorm"

	"hotelbooking/internal/config"
	"hotelbooking/internal/domain/access"
	"hotelbooking/internal/domain/admin"
	"hotelbooking/internal/domain/auth"
	"hotelbooking/internal/domain/booking"
	"hotelbooking/internal/domain/catalog"
	"hotelbooking/internal/domain/dashboard"
	"hotelbooking/internal/domain/notification"
	"hotelbooking/internal/domain/report"
	"hotelbooking/internal/middleware"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/mailer"
	"hotelbooking/internal/pkg/metrics"
	"hotelbooking/internal/pkg/response"
)

// App holds the HTTP router and the collaborators the process serves
// alongside it.
type App struct {
	Router  *gin.Engine
	Metrics *metrics.Metrics
}

// New wires repositories, services and handlers on top of an open database.
// The schema must already be migrated.
func New(cfg *config.Config, db *gorm.DB, logger log.Logger) *App {
	m := metrics.New()
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	mail := mailer.New(cfg.SMTP, cfg.FrontendURL, logger)

	userRepo := auth.NewUserRepository(db)
	authHandler := auth.NewHandler(
		auth.NewService(userRepo, j, mail, cfg.PasswordResetTTL, logger),
		!cfg.IsProd(),
	)

	notifier := notification.NewService(userRepo, mail)
	bookingService := booking.NewService(booking.NewRepository(db), notifier, m, logger)
	bookingHandler := booking.NewHandler(bookingService)

	catalogHandler := catalog.NewHandler(catalog.NewService(catalog.NewRepository(db), logger))
	adminHandler := admin.NewHandler(admin.NewService(admin.NewUserRepository(db), logger))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(dashboard.NewRepository(db)))
	reportHandler := report.NewHandler(report.NewExporter(bookingService), logger)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger, m.PanicRecovered),
		m.Middleware(),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"message": "Welcome to Hotel Management System API"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)

		public := api.Group("/public")
		catalogHandler.RegisterPublicRoutes(public)
		bookingHandler.RegisterPublicRoutes(public)

		authed := api.Group("")
		authed.Use(middleware.JWTAuth(j), middleware.RequireActive(userRepo))
		{
			authHandler.RegisterProtectedRoutes(authed)
			bookingHandler.RegisterRoutes(authed)

			manager := authed.Group("/manager")
			manager.Use(middleware.RequireRole(string(access.RoleManager), string(access.RoleAdmin)))
			catalogHandler.RegisterManagerRoutes(manager)
			bookingHandler.RegisterManagerRoutes(manager)
			dashboardHandler.RegisterManagerRoutes(manager)
			reportHandler.RegisterManagerRoutes(manager)

			adm := authed.Group("/admin")
			adm.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adm)
			catalogHandler.RegisterAdminRoutes(adm)
			dashboardHandler.RegisterAdminRoutes(adm)
		}
	}

	return &App{Router: r, Metrics: m}
}
