// Package logger provides structured logging for parakit packages
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// The engine injects a *Logger into its orchestrator, workers, and log
// relay instead of relying on a hidden global handle.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.NewDefault("parakit").WithComponent("worker")
//	log.Info("item processed", logger.Fields("item", "foo"))
package logger
