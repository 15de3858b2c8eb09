// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which reports its name and whether it is
// enabled, and registers its routes on Load.
//
// # Manager
//
// The Manager holds the registered features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll(), in registration order
//
// The local report surface is the only feature today; new read-only views plug in the
// same way.
package loader
