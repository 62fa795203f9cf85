// Package sqlite provides a unified SQLite-based implementation of the
// driven store ports.
//
// The adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. A single
// database connection backs every entity store:
//
//   - UserStore: identity-provider user mirror
//   - CompanyStore / ContactStore: CRM records
//   - InteractionStore / NoteStore / NotificationStore: activity data
//   - ThreadStore: assistant conversations
//   - EmbeddingStore: semantic search index
//
// # Schema
//
// The database schema is managed through versioned migrations embedded
// from the migrations/ directory and applied in filename order.
//
// # Data Location
//
// By default, the database is stored at ~/.anchor/data/anchor.db.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
