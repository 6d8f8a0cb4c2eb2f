package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "citypulse/backend/docs"
	"citypulse/backend/internal/handler"
	"citypulse/backend/internal/service"
)

// NewRouter builds the Echo instance with all routes registered. The API
// lives under /api; everything the admin dashboard touches sits behind the
// JWT middleware, while the comment form, alert list, and login are open.
func NewRouter(
	commentHandler *handler.CommentHandler,
	dashboardHandler *handler.DashboardHandler,
	alertHandler *handler.AlertHandler,
	settingsHandler *handler.SettingsHandler,
	authHandler *handler.AuthHandler,
	exportHandler *handler.ExportHandler,
	analysisHandler *handler.AnalysisHandler,
	importHandler *handler.ImportHandler,
	authService service.AuthService,
	submitPerMinute int,
	staticDir string,
	swaggerEnabled bool,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")

	commentHandler.RegisterPublicRoutes(api, SubmitRateLimitMiddleware(submitPerMinute, 0))
	dashboardHandler.RegisterPublicRoutes(api)
	alertHandler.RegisterPublicRoutes(api)
	settingsHandler.RegisterPublicRoutes(api)
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("", JWTAuthMiddleware(authService))
	authHandler.RegisterProtectedRoutes(protected)
	commentHandler.RegisterRoutes(protected)
	dashboardHandler.RegisterRoutes(protected)
	alertHandler.RegisterRoutes(protected)
	settingsHandler.RegisterRoutes(protected)
	exportHandler.RegisterRoutes(protected)
	analysisHandler.RegisterRoutes(protected)
	importHandler.RegisterRoutes(protected)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if swaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	registerStatic(e, staticDir)

	return e
}
