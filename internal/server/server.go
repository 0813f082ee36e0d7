package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/handler"
	"shopapi/internal/middleware"
	"shopapi/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// ログイン試行のバースト
const loginBurst = 10

type Deps struct {
	Tokens   middleware.TokenParser
	Users    repository.UserRepository
	Handlers Handlers
}

type Server struct {
	echo *echo.Echo
	addr string
	log  zerolog.Logger
}

func New(cfg config.Config, log zerolog.Logger, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.IsDevelopment(), log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.BodyLimit("1M"))
	if len(cfg.CORSAllowOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowCredentials: true,
		}))
	}

	guards := guardSet{
		authJWT:      middleware.AuthJWT(deps.Tokens),
		tokenVersion: middleware.TokenVersionGuard(deps.Users),
		adminRole:    middleware.AdminRoleGuard(),
		loginLimit:   middleware.RateLimit(cfg.LoginRateLimit, loginBurst),
	}
	registerRoutes(e, routeTable(deps.Handlers, guards))

	return &Server{
		echo: e,
		addr: cfg.Addr(),
		log:  log,
	}
}

// テストからhttptestで叩く用
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Shutdownされるまでブロック
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.addr).Msg("server started")
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
