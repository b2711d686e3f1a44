package server

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/safeharbor/harbor/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
	flagConfig  = "config"
)

// AppGenerator lets us lazily initialize app, using home dir and logger
// potentially initialized with other flags. Collectors created by the
// application are registered with reg.
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// parseFlags loads the configuration file and applies the command line
// flags on top of it.
func parseFlags(home string, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	var (
		confPath = startFlags.String(flagConfig, ConfigPath(home), "node configuration file")
		bind     = startFlags.String(flagBind, "", "address server listens on")
		debug    = startFlags.Bool(flagDebug, false, "call stack returned on error")
		metrics  = startFlags.String(flagMetrics, "", "address prometheus metrics are served on")
	)
	if err := startFlags.Parse(args); err != nil {
		return Config{}, errors.Wrap(errors.ErrInput, err.Error())
	}

	conf, err := LoadConfig(*confPath)
	if err != nil {
		return conf, err
	}
	startFlags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case flagBind:
			conf.Bind = *bind
		case flagDebug:
			conf.Debug = *debug
		case flagMetrics:
			conf.MetricsAddr = *metrics
		}
	})
	return conf, conf.Validate()
}

// StartCmd initializes the application and serves it over an ABCI socket
// until the process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, gen, logger, home, args)
}

// Run is StartCmd with an explicit lifetime. It returns once ctx is done
// and all servers are stopped.
func Run(ctx context.Context, gen AppGenerator, logger log.Logger, home string, args []string) error {
	conf, err := parseFlags(home, args)
	if err != nil {
		return err
	}
	logger, err = conf.FilterLogger(logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	app, err := gen(home, logger, conf.Debug, reg)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start abci server")
	}
	defer svr.Stop()

	if conf.MetricsAddr != "" {
		metrics := &http.Server{
			Addr:    conf.MetricsAddr,
			Handler: metricsHandler(reg),
		}
		go func() {
			logger.Info("Serving metrics", "addr", conf.MetricsAddr)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metrics.Shutdown(shutdownCtx)
		}()
	}

	<-ctx.Done()
	logger.Info("Stopping ABCI app")
	return nil
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}
