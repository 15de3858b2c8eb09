// Package logger provides a structured logging facility based on Zap.
//
// Level and encoding come from Config. "debug" selects the development preset; every
// other level uses the production preset with the level applied on top. Console encoding
// is the default since the tool is run by hand; json suits log shipping.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context of the local report server
// and attaches it to the log entry, so all logs of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("refresh finished", zap.Int("blueprints", n))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
