// Package logger provides structured logging for the localstt service
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "localstt").WithComponent("pipeline")
//	log.Info("transcription complete", logger.Fields("duration_ms", 420))
package logger
