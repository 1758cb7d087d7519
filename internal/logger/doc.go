// Package logger wraps zap with a process-wide sugared logger,
// context-scoped loggers (ToContext/FromContext/WithName/WithKV)
// and level parsing for configuration and CLI flags.
//
// Services accept a context and pull the logger from it, so names and
// fields attached upstream follow every log line.
package logger
