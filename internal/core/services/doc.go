// Package services implements the core business logic, wiring driven
// ports (stores, AI providers) into the driving ports the HTTP API, MCP
// server and CLI consume.
package services
