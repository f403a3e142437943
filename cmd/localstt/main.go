// Command localstt serves local speech-to-text transcription over HTTP.
//
// It loads the recognition engine handle at startup, refuses to serve
// until the handle is ready, and exposes POST /transcribe plus health
// and readiness probes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/skillsenselab/localstt/internal/config"
	"github.com/skillsenselab/localstt/internal/logger"
	"github.com/skillsenselab/localstt/internal/observability"
	"github.com/skillsenselab/localstt/internal/server"
	"github.com/skillsenselab/localstt/internal/server/endpoint"
	"github.com/skillsenselab/localstt/internal/transcribe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetGlobalLogger().Fatal("configuration error", logger.ErrorFields("load", err))
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	if err := run(cfg, log); err != nil {
		log.Fatal("service failed", logger.ErrorFields("run", err))
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Init(ctx, cfg.Telemetry, cfg.Name, cfg.Version, cfg.Environment, log)
	if err != nil {
		return err
	}
	defer func() {
		if telemetry != nil {
			if err := telemetry.Shutdown(context.Background()); err != nil {
				log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
			}
		}
	}()

	// The engine handle must be ready before any request is served; a
	// load failure is fatal.
	handle := transcribe.NewHandle(cfg.Engine, log)
	if err := handle.Load(ctx); err != nil {
		return err
	}

	profile, err := cfg.Profile.Resolve()
	if err != nil {
		return err
	}
	log.Info("tuning profile selected", logger.Fields(
		logger.FieldProfile, profile.Name,
		"expose_detection", profile.ExposeDetection,
	))

	var metrics *observability.Metrics
	if telemetry != nil {
		metrics = telemetry.Metrics
	}
	pipeline := transcribe.NewPipeline(handle, cfg.Engine, cfg.Upload, profile, log, metrics)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	engine := srv.GinEngine()
	engine.GET("/health", endpoint.Health())
	engine.GET("/ready", endpoint.Readiness(handle))
	engine.POST("/transcribe", endpoint.Transcribe(pipeline))

	serveErr, err := srv.Start(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case err, ok := <-serveErr:
			if ok {
				return err
			}
			return nil
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop(context.Background())
	})

	return g.Wait()
}
