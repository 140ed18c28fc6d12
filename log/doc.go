// Package log provides a small leveled logging facade for the router.
//
// The router emits occasional debug lines (routing decisions, fallbacks,
// cache degradations) through a package-level logger that applications can
// replace or silence:
//
//	// Verbose routing diagnostics during development
//	log.SetLogLevel(log.LogLevelDebug)
//
//	// Silence the library entirely
//	log.SetDefaultLogger(&log.NoOpLogger{})
//
// # Implementations
//
// DefaultLogger writes prefixed lines through the standard library's log
// package and is safe for concurrent use. GologLogger forwards to an
// existing kataras/golog logger so router output lands in the host
// application's stream:
//
//	glogger := golog.New()
//	log.SetDefaultLogger(log.NewGologLogger(glogger))
//
// Any type implementing the four-method Logger interface can be plugged in
// the same way.
package log
