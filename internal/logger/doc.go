// Package logger wraps zap with a global sugared logger and context helpers.
//
// The controller, repositories and CLI never hold a logger field: they pull
// one from the context with FromContext, so callers decide the name and the
// key-value pairs attached to every line (see WithName and WithKV).
package logger
