// Package memory provides in-memory implementations of the driven
// store ports, used by service tests and local experimentation. The
// stores are map-backed, mutex-guarded and apply the same user scoping
// as the SQLite adapter, but skip relational niceties like cascades
// beyond what the services rely on.
package memory
