package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist or does
	// not belong to the calling user. The two cases are deliberately
	// indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the caller presented no usable identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured or unreachable. Semantic search degrades to lexical-only.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAssistantUnavailable indicates the completion provider is not
	// configured. Assistant endpoints are disabled.
	ErrAssistantUnavailable = errors.New("assistant service unavailable")

	// ErrRateLimited indicates a provider rejected the call for quota
	// reasons. Recoverable; callers must not retry indefinitely.
	ErrRateLimited = errors.New("rate limited")
)
