package domain

import "time"

// NotificationType classifies a follow-up reminder.
type NotificationType string

// Notification types.
const (
	NotificationFollowUpEmail   NotificationType = "follow_up_email"
	NotificationFollowUpCall    NotificationType = "follow_up_call"
	NotificationFollowUpMeeting NotificationType = "follow_up_meeting"
	NotificationGeneral         NotificationType = "general"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationFollowUpEmail, NotificationFollowUpCall,
		NotificationFollowUpMeeting, NotificationGeneral:
		return true
	}
	return false
}

// NotificationStatus selects a due-date view of pending notifications.
type NotificationStatus string

// Notification status filters.
const (
	NotificationPending  NotificationStatus = "pending"
	NotificationUpcoming NotificationStatus = "upcoming"
	NotificationOverdue  NotificationStatus = "overdue"
)

// Notification is a follow-up reminder, optionally tied to a contact
// and the interaction that prompted it.
type Notification struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	ContactID     string           `json:"contactId,omitempty"`
	InteractionID string           `json:"interactionId,omitempty"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	IsCompleted   bool             `json:"isCompleted"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// NotificationWithRefs hydrates a notification with its contact and
// interaction for list and detail responses.
type NotificationWithRefs struct {
	Notification
	Contact     *Contact     `json:"contact,omitempty"`
	Interaction *Interaction `json:"interaction,omitempty"`
}
