package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/liveclass"
	"github.com/trezcool/shule/core/notice"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/textbook"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/database/inmem"
)

type (
	// StatsProvider reports the size of each entity table.
	StatsProvider interface {
		Counts() inmemdb.Counts
	}

	Options struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Registerer prometheus.Registerer // nil disables metrics
		Stats      StatsProvider
		Sessions   session.Store
		Now        func() time.Time // defaults to time.Now

		UserSvc      *user.Service
		HomeworkSvc  *homework.Service
		TextbookSvc  *textbook.Service
		LiveClassSvc *liveclass.Service
		NoticeSvc    *notice.Service
		CircularSvc  *circular.Service
		ComplaintSvc *complaint.Service
	}

	Server struct {
		opts       *Options
		app        *echo.Echo
		shutdown   chan os.Signal
		stopNotify sync.Once
	}
)

func NewServer(opts *Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Server.ReadTimeout = conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = conf.Server.WriteTimeout

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// inside the request logger: the error is handled here and never reaches the logger
	if s.opts.Registerer != nil {
		s.app.Use(newMetrics(s.opts.Registerer).middleware)
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	g := s.app.Group("/api")
	auth := newSessionAuth(conf, s.opts.Sessions, s.opts.UserSvc)

	g.GET("/health", s.health)
	registerUserAPI(g, auth, s.opts.UserSvc, s.opts.Validate, s.opts.Translator)
	registerHomeworkAPI(g, s.opts.HomeworkSvc, s.opts.Validate, s.opts.Translator, s.opts.Now)
	registerTextbookAPI(g, s.opts.TextbookSvc)
	registerLiveClassAPI(g, s.opts.LiveClassSvc, s.opts.Validate, s.opts.Translator, s.opts.Now)
	registerNoticeAPI(g, s.opts.NoticeSvc)
	registerCircularAPI(g, s.opts.CircularSvc)
	registerComplaintAPI(g, auth.middleware, s.opts.ComplaintSvc, s.opts.Validate, s.opts.Translator)
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	err := s.app.Start(s.opts.Conf.Server.Address)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.stopSignals()
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	s.stopSignals()
	return s.app.Close()
}

// stopSignals releases the OS signal registration made by NewServer.
func (s *Server) stopSignals() {
	s.stopNotify.Do(func() { signal.Stop(s.shutdown) })
}

// ShutdownSignal receives on SIGINT, SIGTERM or a core.shutdown error.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.Conf.AppName+" API!")
}

func (s *Server) health(ctx echo.Context) error {
	resp := echo.Map{"status": "ok"}
	if s.opts.Stats != nil {
		resp["counts"] = s.opts.Stats.Counts()
	}
	return ctx.JSON(http.StatusOK, resp)
}
