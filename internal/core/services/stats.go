package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService aggregates dashboard counters.
type StatsService struct {
	contacts      driven.ContactStore
	companies     driven.CompanyStore
	interactions  driven.InteractionStore
	notes         driven.NoteStore
	notifications driven.NotificationStore
}

// NewStatsService creates a new stats service.
func NewStatsService(
	contacts driven.ContactStore,
	companies driven.CompanyStore,
	interactions driven.InteractionStore,
	notes driven.NoteStore,
	notifications driven.NotificationStore,
) *StatsService {
	return &StatsService{
		contacts:      contacts,
		companies:     companies,
		interactions:  interactions,
		notes:         notes,
		notifications: notifications,
	}
}

// Dashboard gathers the counters concurrently and returns them as one
// snapshot.
func (s *StatsService) Dashboard(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekAgo := now.AddDate(0, 0, -7)

	var stats domain.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalContacts, err = s.contacts.Count(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalCompanies, err = s.companies.Count(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalInteractions, err = s.interactions.Count(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalNotes, err = s.notes.Count(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingNotifications, err = s.notifications.CountByStatus(ctx, userID, domain.NotificationPending)
		return err
	})
	g.Go(func() (err error) {
		stats.OverdueNotifications, err = s.notifications.CountByStatus(ctx, userID, domain.NotificationOverdue)
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingNotifications, err = s.notifications.CountByStatus(ctx, userID, domain.NotificationUpcoming)
		return err
	})
	g.Go(func() (err error) {
		stats.ContactsThisMonth, err = s.contacts.CountCreatedSince(ctx, userID, monthStart)
		return err
	})
	g.Go(func() (err error) {
		stats.InteractionsThisWeek, err = s.interactions.CountSince(ctx, userID, weekAgo)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("gathering dashboard stats: %w", err)
	}
	return &stats, nil
}
