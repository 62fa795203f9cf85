// Package domain contains the core business entities and value types for
// the Anchor CRM: users, companies, contacts, interactions, notes,
// follow-up notifications, assistant threads, and the embedding records
// that back semantic search.
//
// Every entity is owned by exactly one user. Cross-user visibility is a
// correctness violation, so every store and service operating on these
// types takes the owning user's ID explicitly.
package domain
