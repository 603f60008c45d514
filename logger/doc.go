// Package logger provides structured logging for compose using zerolog.
//
// Pipelines and registries log through a *Logger; when none is supplied
// they fall back to the global logger tagged with their component name.
//
// # Usage
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "svc")
//	log.Info("pipeline ready", logger.Fields("steps", 3))
package logger
