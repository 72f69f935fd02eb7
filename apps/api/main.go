package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/shule/apps/api/di/dig"
	"github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/database/inmem"
	"github.com/trezcool/shule/storage/seed"
)

func main() {
	c := dig_container.New()
	must(c.Invoke(run))
}

func run(
	conf *core.Config,
	zl *zap.Logger,
	logger core.Logger,
	db *inmemdb.DB,
	sessions *inmemdb.SessionStore,
	usrSvc *user.Service,
	validate *validator.Validate,
	translator ut.Translator,
	server *echoapi.Server,
) error {
	defer func() { _ = zl.Sync() }()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	if conf.SeedDemoData {
		if err := seed.LoadDemoData(db, time.Now()); err != nil {
			return errors.Wrap(err, "loading demo data")
		}
	}
	if conf.SeedUsersFile != "" {
		n, err := seed.LoadUsers(conf.SeedUsersFile, usrSvc)
		if err != nil {
			return errors.Wrap(err, "loading users")
		}
		logger.Info(fmt.Sprintf("loaded %d users from %s", n, conf.SeedUsersFile))
	}

	sessions.StartSweeper(conf.Server.SessionSweepInterval, logger)
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing session store: %v", err), err)
		}
	}()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - Prometheus metrics of the API server.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.Publish("counts", expvar.Func(func() interface{} { return db.Counts() }))

	http.Handle("/metrics", promhttp.Handler())
	debugSrv := &http.Server{Addr: conf.Server.DebugHost, Handler: http.DefaultServeMux}

	// =========================================================================
	// Start API Service

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		logger.Info("debug server listening on " + conf.Server.DebugHost)
		if err := debugSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "debug server")
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("API server listening on " + conf.Server.Address)
		return errors.Wrap(server.Start(), "API server")
	})

	// =========================================================================
	// Shutdown

	g.Go(func() error {
		select {
		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
		case <-ctx.Done(): // a server failed to start
		}

		// give outstanding requests a deadline for completion
		sctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(sctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			if err = server.Close(); err != nil {
				return errors.Wrap(err, "could not force stop server")
			}
		}
		return debugSrv.Shutdown(sctx)
	})

	return g.Wait()
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
