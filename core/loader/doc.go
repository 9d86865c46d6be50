// Package loader provides the plugin-like feature loading system.
//
// It allows the application to register and initialize features (modules)
// dynamically. Each feature implements the Feature interface, which defines
// its lifecycle hooks and route registration logic.
//
// The Manager struct holds the registry of available features. It handles
// registration via Register() and initialization of enabled features via
// LoadAll(). This keeps features like 'reconcile' and 'consistency'
// developed and tested in isolation.
package loader
