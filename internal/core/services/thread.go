package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure ThreadService implements the interface.
var _ driving.ThreadService = (*ThreadService)(nil)

// ThreadService manages assistant conversation threads.
type ThreadService struct {
	threads driven.ThreadStore
}

// NewThreadService creates a new thread service.
func NewThreadService(threads driven.ThreadStore) *ThreadService {
	return &ThreadService{threads: threads}
}

// Get retrieves a thread with its messages in order.
func (s *ThreadService) Get(ctx context.Context, userID, id string) (*domain.ThreadWithMessages, error) {
	return s.threads.GetThread(ctx, userID, id)
}

// List returns a page of threads, most recently updated first.
func (s *ThreadService) List(ctx context.Context, userID string, page domain.PageParams) (domain.Page[domain.Thread], error) {
	page = page.Clamp()
	threads, total, err := s.threads.ListThreads(ctx, userID, page)
	if err != nil {
		return domain.Page[domain.Thread]{}, fmt.Errorf("listing threads: %w", err)
	}
	return domain.NewPage(threads, total, page), nil
}

// Rename updates a thread's title.
func (s *ThreadService) Rename(ctx context.Context, userID, id, title string) (*domain.Thread, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: thread title cannot be empty", domain.ErrInvalidInput)
	}

	if err := s.threads.RenameThread(ctx, userID, id, title); err != nil {
		return nil, err
	}

	thread, err := s.threads.GetThread(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &thread.Thread, nil
}

// Delete removes a thread and its messages.
func (s *ThreadService) Delete(ctx context.Context, userID, id string) error {
	return s.threads.DeleteThread(ctx, userID, id)
}
