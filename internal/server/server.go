package server

import (
	"kingtech-store/internal/handler"
	custommw "kingtech-store/internal/middleware"
	"kingtech-store/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo             *echo.Echo
	productHandler   *handler.ProductHandler
	catalogHandler   *handler.CatalogHandler
	downloadHandler  *handler.DownloadHandler
	orderHandler     *handler.OrderHandler
	authHandler      *handler.AuthHandler
	dashboardHandler *handler.DashboardHandler
}

type Options struct {
	AuthService         service.AuthService
	ProductService      service.ProductService
	VerificationService service.VerificationService
	OrderService        service.OrderService
	StatsService        service.StatsService
	BasicAuthEnabled    bool
	SecureCookies       bool
}

func NewServer(opts Options) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:             e,
		productHandler:   handler.NewProductHandler(opts.ProductService),
		catalogHandler:   handler.NewCatalogHandler(opts.ProductService),
		downloadHandler:  handler.NewDownloadHandler(opts.VerificationService, opts.ProductService),
		orderHandler:     handler.NewOrderHandler(opts.OrderService),
		authHandler:      handler.NewAuthHandler(opts.AuthService, opts.SecureCookies),
		dashboardHandler: handler.NewDashboardHandler(opts.StatsService),
	}

	s.setupRoutes(opts)
	return s
}

func (s *Server) setupRoutes(opts Options) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public storefront --------
	api.GET("/products", s.catalogHandler.ListAvailable)
	api.GET("/products/featured", s.catalogHandler.Featured)
	api.GET("/download/:verificationId", s.downloadHandler.Redeem)
	api.POST("/orders/email-history", s.orderHandler.EmailOrderHistory)

	// -------- auth --------
	s.echo.GET("/login", s.authHandler.Login)
	s.echo.GET("/oauth/callback", s.authHandler.Callback)
	s.echo.GET("/logout", s.authHandler.Logout)

	// -------- admin --------
	admin := api.Group("/admin", custommw.RequireAdmin(opts.AuthService, opts.BasicAuthEnabled))
	admin.GET("/dashboard", s.dashboardHandler.Dashboard)
	admin.GET("/products", s.productHandler.ListProducts)
	admin.POST("/products", s.productHandler.CreateProduct)
	admin.GET("/products/:id", s.productHandler.GetProduct)
	admin.PUT("/products/:id", s.productHandler.UpdateProduct)
	admin.PATCH("/products/:id/availability", s.productHandler.ToggleAvailability)
	admin.DELETE("/products/:id", s.productHandler.DeleteProduct)
	admin.GET("/products/:id/download", s.downloadHandler.AdminDownload)

	// -------- payment provider callbacks --------
	s.echo.POST("/webhooks/stripe", s.orderHandler.StripeWebhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
