package domain

import "time"

// InteractionType classifies how a contact was engaged.
type InteractionType string

// Interaction types.
const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
	InteractionOther   InteractionType = "other"
)

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionOther:
		return true
	}
	return false
}

// Sentiment records how an interaction went.
type Sentiment string

// Sentiments.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Interaction is a single touchpoint with a contact: a call, email,
// meeting, or anything else worth logging.
type Interaction struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	ContactID  string          `json:"contactId"`
	Type       InteractionType `json:"type"`
	Summary    string          `json:"summary,omitempty"`
	Outcome    string          `json:"outcome,omitempty"`
	Sentiment  Sentiment       `json:"sentiment,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// InteractionWithContact hydrates an interaction with its contact for
// list responses.
type InteractionWithContact struct {
	Interaction
	Contact *Contact `json:"contact,omitempty"`
}
