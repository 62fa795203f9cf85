// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Anchor. It lets local AI agents search and manage a configured
// user's contacts.
package mcp

import "errors"

// Sentinel errors for missing configuration.
var (
	ErrMissingSearchService  = errors.New("mcp: search service is required")
	ErrMissingContactService = errors.New("mcp: contact service is required")
	ErrMissingUserID         = errors.New("mcp: user ID is required")
)
