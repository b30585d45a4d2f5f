package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gestionstock/product-api/docs"
	"github.com/gestionstock/product-api/internal/api/handler"
	"github.com/gestionstock/product-api/internal/api/middleware"
	"github.com/gestionstock/product-api/internal/core/authz"
	"github.com/gestionstock/product-api/internal/core/ports"
	"github.com/gestionstock/product-api/internal/infrastructure/http/handlers"
)

// Options carries the services and switches the router is built from.
type Options struct {
	Products ports.ProductService
	Auth     ports.AuthService
	Books    ports.BookService
	Tokens   ports.TokenVerifier
	Policy   *authz.Policy

	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handlers.Check

	Log zerolog.Logger
	// Metrics mounts the echoprometheus middleware and GET /metrics. The
	// collectors go to the default registry, so enable it once per process.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(o Options) *echo.Echo {
	if o.Policy == nil {
		o.Policy = authz.DefaultPolicy()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(o.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(o.Log))
	if o.Metrics {
		e.Use(echoprometheus.NewMiddleware("products_api"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(o.Auth)
	productHandler := handler.NewProductHandler(o.Products)
	bookHandler := handler.NewBookHandler(o.Books)
	requireAuth := middleware.Auth(o.Tokens)
	canManage := middleware.Authorize(o.Policy, authz.CapabilityManageProducts)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/users", authHandler.ListUsers, requireAuth)
	api.GET("/protected", authHandler.Protected, requireAuth)

	// --- Products v1: open reads, authenticated writes ---
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create, requireAuth)
	api.PUT("/products/:id", productHandler.Update, requireAuth)
	api.DELETE("/products/:id", productHandler.Delete, requireAuth)

	// --- Products v2: authenticated reads, gestionnaire-only writes ---
	v2 := api.Group("/v2/products", requireAuth)
	v2.GET("", productHandler.ListV2)
	v2.GET("/:id", productHandler.Get)
	v2.POST("", productHandler.CreateV2, canManage)
	v2.PUT("/:id", productHandler.UpdateV2, canManage)
	v2.DELETE("/:id", productHandler.Delete, canManage)

	// --- Books ---
	api.GET("/books", bookHandler.List)
	api.POST("/books", bookHandler.Create)
	api.GET("/books/:id", bookHandler.Get)
	api.PUT("/books/:id", bookHandler.Update)
	api.DELETE("/books/:id", bookHandler.Delete)

	// --- Docs ---
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(o.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("username", usernameOf(c)).
				Msg("request")
			return nil
		},
	})
}

func usernameOf(c echo.Context) string {
	if claims := middleware.ClaimsFrom(c); claims != nil {
		return claims.Username
	}
	return ""
}
