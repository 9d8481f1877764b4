package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	appmiddleware "ceylon_travel/internal/middleware"
	httprouters "ceylon_travel/internal/transport/http"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	host      string
	port      string
	timeout   time.Duration
	jwtSecret string
}

func New(log *slog.Logger, jwtSecret, host, port string, timeout time.Duration, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		ExposeHeaders: []string{httprouters.HeaderStorageBackend, httprouters.HeaderStorageDegraded},
	}))
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	if timeout > 0 {
		e.Server.ReadTimeout = timeout
		e.Server.WriteTimeout = timeout
	}

	return &Server{
		log:       log,
		e:         e,
		routers:   routers,
		host:      host,
		port:      port,
		timeout:   timeout,
		jwtSecret: jwtSecret,
	}
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.host, s.port)
}

func (s *Server) BuildRouters() {
	admin := appmiddleware.AdminOnly(s.log, s.jwtSecret)

	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api")
	{
		destinations := api.Group("/destinations")
		{
			destinations.GET("", s.routers.ListDestinations)
			destinations.GET("/regions", s.routers.Regions)
			destinations.POST("", s.routers.CreateDestination, admin)
			destinations.PUT("", s.routers.SaveDestination, admin)
			destinations.DELETE("", s.routers.DeleteDestination, admin)
		}

		tours := api.Group("/tours")
		{
			tours.GET("", s.routers.ListTours)
			tours.GET("/featured", s.routers.FeaturedTours)
			tours.GET("/:id", s.routers.GetTour)
			tours.POST("", s.routers.CreateTour, admin)
			tours.PUT("/:id", s.routers.UpdateTour, admin)
			tours.DELETE("/:id", s.routers.DeleteTour, admin)
		}

		blog := api.Group("/blog")
		{
			blog.GET("", s.routers.ListBlogPosts)
			blog.POST("", s.routers.CreateBlogPost, admin)
			blog.PUT("", s.routers.UpdateBlogPost, admin)
			blog.DELETE("", s.routers.DeleteBlogPost, admin)
		}

		content := api.Group("/site-content")
		{
			content.GET("", s.routers.GetSiteContent)
			content.PUT("", s.routers.UpdateSiteContent, admin)
		}
	}
}
