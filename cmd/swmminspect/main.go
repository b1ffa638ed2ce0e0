// Command swmminspect serves a read-only HTTP inspection surface over a
// results file: project metadata, element listings, and series/attribute/
// result queries, plus a Prometheus /metrics endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swmmout/api"
	"swmmout/internal/rlog"
	"swmmout/internal/rptconfig"
	"swmmout/metrics"
	"swmmout/rpt"
)

// openErrorCode extracts a stable metric label from an rpt.OpenFile
// error, falling back to the error text for anything unexpected.
func openErrorCode(err error) string {
	var code rpt.ErrorCode
	if errors.As(err, &code) {
		return strconv.Itoa(int(code))
	}
	return err.Error()
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := rptconfig.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := rlog.SetLevel(cfg.LogLevel); err != nil {
		log.Fatalf("log level: %v", err)
	}

	if cfg.DataPath == "" {
		log.Fatal("data path not set (SWMMOUT_DATA_PATH or config file)")
	}

	reader, err := rpt.OpenFile(cfg.DataPath)
	if err != nil {
		metrics.RecordOpenError(openErrorCode(err))
		log.Fatalf("open %s: %v", cfg.DataPath, err)
	}
	metrics.RecordOpen()
	defer reader.Close()

	server := api.NewServer(reader, cfg.BearerTokenHash)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", server)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	rlog.Info("starting swmminspect on %s, serving %s", cfg.ListenAddr, cfg.DataPath)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rlog.Fatal("http server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	rlog.Info("received signal %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		rlog.Error("shutdown error: %v", err)
	}
	rlog.Info("swmminspect shutdown complete")
}
