package domain

// DashboardStats is the aggregate snapshot behind the dashboard view.
type DashboardStats struct {
	TotalContacts         int64 `json:"totalContacts"`
	TotalCompanies        int64 `json:"totalCompanies"`
	TotalInteractions     int64 `json:"totalInteractions"`
	TotalNotes            int64 `json:"totalNotes"`
	PendingNotifications  int64 `json:"pendingNotifications"`
	OverdueNotifications  int64 `json:"overdueNotifications"`
	UpcomingNotifications int64 `json:"upcomingNotifications"`
	ContactsThisMonth     int64 `json:"contactsThisMonth"`
	InteractionsThisWeek  int64 `json:"interactionsThisWeek"`
}
