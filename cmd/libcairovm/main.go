// Command libcairovm is built with -buildmode=c-shared. The embedding process
// defines the Juno* state callbacks and calls cairoVMCall and cairoVMExecute.
//
// No execution engine ships with the library. A build that runs Cairo code adds a
// file to this package importing a package whose init calls ffi.SetEngine; without
// one every invocation reports ffi.ErrEngineUnavailable.
package main

import "C"

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/NethermindEth/junovm/ffi"
	"github.com/NethermindEth/junovm/metrics"
	"github.com/NethermindEth/junovm/utils"
	"github.com/NethermindEth/junovm/vm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

const (
	logLevelKey    = "log_level"
	metricsAddrKey = "metrics_addr"

	readHeaderTimeout = 5 * time.Second
)

type config struct {
	LogLevel    utils.LogLevel
	MetricsAddr string
}

func loadConfig() (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("CAIROVM")
	v.SetDefault(logLevelKey, utils.WARN.String())
	v.SetDefault(metricsAddrKey, "")
	v.AutomaticEnv()

	cfg := &config{MetricsAddr: v.GetString(metricsAddrKey)}
	if err := cfg.LogLevel.Set(v.GetString(logLevelKey)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "libcairovm:", err)
		cfg = &config{LogLevel: utils.WARN}
	}

	log, err := utils.NewZapLogger(cfg.LogLevel, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "libcairovm:", err)
		return
	}

	ffi.Configure(log, newListener(cfg, log))
	if !ffi.EngineInstalled() {
		log.Warnw("No execution engine installed, invocations will fail")
	}
}

// newListener records invocation metrics to a Prometheus registry when a metrics
// address is configured and discards them otherwise.
func newListener(cfg *config, log utils.SimpleLogger) vm.EventListener {
	factory := metrics.VoidFactory()
	if cfg.MetricsAddr != "" {
		registry := metrics.PrometheusRegistry()
		factory = metrics.PrometheusFactory(registry)
		serveMetrics(cfg.MetricsAddr, registry, log)
	}
	return metrics.NewVMListener(factory)
}

// serveMetrics exposes the registry for as long as the host process lives. The
// library has no shutdown hook, so the server is never closed.
func serveMetrics(addr string, registry *prometheus.Registry, log utils.SimpleLogger) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Errorw("Failed to listen for metrics", "addr", addr, "err", err)
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.PrometheusHandler(registry))
	srv := &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("Metrics server stopped", "err", err)
		}
	}()
	log.Infow("Serving metrics", "addr", listener.Addr().String())
}

func main() {}
