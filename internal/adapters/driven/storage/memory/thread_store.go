package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure ThreadStore implements the interface.
var _ driven.ThreadStore = (*ThreadStore)(nil)

// ThreadStore is an in-memory implementation of driven.ThreadStore.
type ThreadStore struct {
	mu       sync.RWMutex
	threads  map[string]domain.Thread
	messages map[string][]domain.Message
}

// NewThreadStore creates a new in-memory thread store.
func NewThreadStore() *ThreadStore {
	return &ThreadStore{
		threads:  make(map[string]domain.Thread),
		messages: make(map[string][]domain.Message),
	}
}

// CreateThread stores a new thread.
func (s *ThreadStore) CreateThread(_ context.Context, thread *domain.Thread) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[thread.ID] = *thread
	return nil
}

// GetThread retrieves a thread with its messages in chronological order.
func (s *ThreadStore) GetThread(_ context.Context, userID, id string) (*domain.ThreadWithMessages, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	thread, ok := s.threads[id]
	if !ok || thread.UserID != userID {
		return nil, domain.ErrNotFound
	}
	result := &domain.ThreadWithMessages{
		Thread:   thread,
		Messages: append([]domain.Message{}, s.messages[id]...),
	}
	return result, nil
}

// ListThreads returns a page of threads, most recently updated first,
// plus the total count.
func (s *ThreadStore) ListThreads(_ context.Context, userID string, page domain.PageParams) ([]domain.Thread, int64, error) {
	s.mu.RLock()
	all := []domain.Thread{}
	for _, thread := range s.threads {
		if thread.UserID == userID {
			all = append(all, thread)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	total := int64(len(all))
	return window(all, page), total, nil
}

// RenameThread updates a thread's name.
func (s *ThreadStore) RenameThread(_ context.Context, userID, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, ok := s.threads[id]
	if !ok || thread.UserID != userID {
		return domain.ErrNotFound
	}
	thread.Name = title
	thread.UpdatedAt = time.Now()
	s.threads[id] = thread
	return nil
}

// TouchThread bumps a thread's updated time.
func (s *ThreadStore) TouchThread(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, ok := s.threads[id]
	if !ok || thread.UserID != userID {
		return domain.ErrNotFound
	}
	thread.UpdatedAt = time.Now()
	s.threads[id] = thread
	return nil
}

// DeleteThread removes a thread and its messages.
func (s *ThreadStore) DeleteThread(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, ok := s.threads[id]
	if !ok || thread.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.threads, id)
	delete(s.messages, id)
	return nil
}

// AppendMessage stores a message at the end of a thread.
func (s *ThreadStore) AppendMessage(_ context.Context, message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[message.ThreadID]; !ok {
		return domain.ErrNotFound
	}
	s.messages[message.ThreadID] = append(s.messages[message.ThreadID], *message)
	return nil
}
