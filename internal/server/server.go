package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/item-service/internal/config"
	"github.com/shinyyama/item-service/internal/handler"
	appmw "github.com/shinyyama/item-service/internal/middleware"
	"github.com/shinyyama/item-service/internal/repository"
	"github.com/shinyyama/item-service/internal/service"
	"go.uber.org/zap"
)

type BuildInfo struct {
	SHA  string
	Time string
}

type Server struct {
	e    *echo.Echo
	repo repository.ItemRepository
	log  *zap.Logger
}

// New wires the item routes on top of repo. authMw may be nil, in which case
// mutating routes are open.
func New(cfg *config.Config, repo repository.ItemRepository, log *zap.Logger, authMw *appmw.AuthMiddleware, build BuildInfo) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	metrics := appmw.NewMetrics()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(appmw.RequestLogger(log))
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin(cfg.AllowedOrigins),
	}))

	itemSvc := service.NewItemService(repo, cfg.RequestTimeout)
	itemHandler := handler.NewItemHandler(itemSvc, log.Named("items"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    build.SHA,
			"build_time": build.Time,
			"store":      cfg.StoreDriver,
		})
	})
	e.GET("/metrics", metrics.Handler())

	var guard []echo.MiddlewareFunc
	if authMw != nil {
		guard = append(guard, authMw.RequireAuth)
	}

	e.GET("/items", itemHandler.List)
	e.GET("/items/:id", itemHandler.Get)
	e.POST("/items-post", itemHandler.Create, guard...)
	e.PUT("/updated-item/:id", itemHandler.Update, guard...)
	e.DELETE("/deleted-item/:id", itemHandler.Delete, guard...)

	if cfg.DemoRoutes {
		demo := handler.NewDemoHandler(itemHandler, cfg.DemoItemID)
		e.GET("/new-items", demo.CreateItem, guard...)
		e.GET("/single-item", demo.GetItem)
		e.GET("/single-item/", demo.GetItem)
	}

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, handler.NewErrorResponse("not_found", "route not found"))
	})

	return &Server{e: e, repo: repo, log: log}
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(addr string) error {
	s.log.Info("starting server", zap.String("addr", addr))
	return s.e.Start(addr)
}

// Shutdown drains in-flight requests, then closes the repository.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.e.Shutdown(ctx)
	if cerr := s.repo.Close(ctx); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

// errorHandler renders errors that escape handlers (router 404/405, bind
// errors, recovered panics) in the same payload shape as handler errors.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}

		var body handler.ErrorResponse
		switch status {
		case http.StatusNotFound:
			body = handler.NewErrorResponse("not_found", "route not found")
		case http.StatusMethodNotAllowed:
			body = handler.NewErrorResponse("method_not_allowed", "method not allowed")
		case http.StatusInternalServerError:
			log.Error("unhandled error", zap.Error(err), zap.String("path", c.Request().URL.Path))
			body = handler.NewErrorResponse("internal_error", "error occurred on server")
		default:
			body = handler.NewErrorResponse(strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_")), http.StatusText(status))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}

// allowOrigin accepts localhost on any port, origins listed exactly, and
// "*.example.com" entries as a host suffix match.
func allowOrigin(allowed []string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		host := u.Hostname()
		for _, a := range allowed {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			if strings.HasPrefix(a, "*.") {
				if strings.HasSuffix(host, a[1:]) {
					return true, nil
				}
				continue
			}
			if a == low {
				return true, nil
			}
		}
		return false, nil
	}
}
