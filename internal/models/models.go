// Package models defines the data structures used across the application.
// JSON field names are the persisted-state contract: the local store keeps
// one serialized document per collection, and prior sessions must keep
// parsing after an upgrade.
package models

import (
	"time"
)

// ReportCategory classifies the kind of civic issue being reported.
type ReportCategory string

const (
	CategoryPothole       ReportCategory = "pothole"
	CategoryStreetlight   ReportCategory = "streetlight"
	CategoryTrash         ReportCategory = "trash"
	CategoryDrainage      ReportCategory = "drainage"
	CategoryRoadDamage    ReportCategory = "road_damage"
	CategoryTrafficSignal ReportCategory = "traffic_signal"
	CategoryWaterSupply   ReportCategory = "water_supply"
	CategoryOther         ReportCategory = "other"
)

// Valid reports whether c is one of the enumerated categories.
func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryPothole, CategoryStreetlight, CategoryTrash, CategoryDrainage,
		CategoryRoadDamage, CategoryTrafficSignal, CategoryWaterSupply, CategoryOther:
		return true
	}
	return false
}

// ReportSeverity grades how urgent an issue is.
type ReportSeverity string

const (
	SeverityLow      ReportSeverity = "low"
	SeverityMedium   ReportSeverity = "medium"
	SeverityHigh     ReportSeverity = "high"
	SeverityCritical ReportSeverity = "critical"
)

// Valid reports whether s is one of the enumerated severities.
func (s ReportSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ReportStatus tracks a report through its lifecycle. Transitions are not
// restricted by a state machine here; administrative paths own that.
type ReportStatus string

const (
	StatusDraft      ReportStatus = "draft"
	StatusSubmitted  ReportStatus = "submitted"
	StatusVerified   ReportStatus = "verified"
	StatusAssigned   ReportStatus = "assigned"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusRejected   ReportStatus = "rejected"
)

// Valid reports whether s is one of the enumerated statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusVerified, StatusAssigned,
		StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// EventType is the timeline vocabulary, matching the status-transition names.
type EventType string

const (
	EventCreated    EventType = "created"
	EventVerified   EventType = "verified"
	EventAssigned   EventType = "assigned"
	EventInProgress EventType = "in_progress"
	EventResolved   EventType = "resolved"
	EventRejected   EventType = "rejected"
)

// TransactionType distinguishes point ledger directions.
type TransactionType string

const (
	TransactionEarned   TransactionType = "earned"
	TransactionRedeemed TransactionType = "redeemed"
)

// User is a citizen identity plus gamification state.
// MeritsPoints is adjusted only through wallet transactions; ReportsCount
// is incremented exactly once per successfully created report.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Name            string    `json:"name"`
	AadhaarVerified bool      `json:"aadhaarVerified"`
	MeritsPoints    int       `json:"meritsPoints"`
	ReportsCount    int       `json:"reportsCount"`
	JoinedAt        time.Time `json:"joinedAt"`
}

// Location is a point on the map plus a human-readable address.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// AISuggestion is the classifier's provisional take on a draft report.
// Confidence is a presentation artifact in [0.70, 1.00), not a real
// model probability.
type AISuggestion struct {
	Category   ReportCategory `json:"category"`
	Severity   ReportSeverity `json:"severity"`
	Confidence float64        `json:"confidence"`
}

// TimelineEvent is an immutable audit entry on a report. The timeline is
// append-only: events are never removed or reordered, and timestamps are
// non-decreasing as produced by this system.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Actor       string    `json:"actor,omitempty"`
}

// Report is a citizen-submitted civic issue.
type Report struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     ReportCategory  `json:"category"`
	Severity     ReportSeverity  `json:"severity"`
	Status       ReportStatus    `json:"status"`
	Location     Location        `json:"location"`
	Images       []string        `json:"images"`
	AIVerified   bool            `json:"aiVerified"`
	AISuggestion *AISuggestion   `json:"aiSuggestions,omitempty"`
	Timeline     []TimelineEvent `json:"timeline"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// WalletTransaction is a single entry in a user's merit point ledger.
// Amounts are positive; direction is carried by Type.
type WalletTransaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Type      TransactionType `json:"type"`
	Amount    int             `json:"amount"`
	Reason    string          `json:"reason"`
	ReportID  string          `json:"reportId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Session pairs the persisted token with the user it authenticates.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// AadhaarVerifyRequest carries the simulated identity check. The 12-digit
// format rule is enforced at this boundary; the store only checks the OTP.
type AadhaarVerifyRequest struct {
	AadhaarNumber string `json:"aadhaarNumber" validate:"required,len=12,numeric"`
	OTP           string `json:"otp" validate:"required"`
}

// ReportDraft is the citizen-supplied portion of a report. Everything else
// (id, owner, suggestions, timeline, timestamps) is synthesized on creation.
type ReportDraft struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Category    ReportCategory `json:"category" validate:"required"`
	Severity    ReportSeverity `json:"severity" validate:"required"`
	Status      ReportStatus   `json:"status"`
	Location    Location       `json:"location"`
	Images      []string       `json:"images"`
}

// SuggestRequest asks the classifier for a live suggestion while drafting.
type SuggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RedeemRequest spends merit points against a reward.
type RedeemRequest struct {
	Amount int    `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required"`
}

// ThemePreference is the presentation layer's persisted theme choice.
type ThemePreference struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

// HealthStatus is the server health check response.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Storage string `json:"storage,omitempty"`
}
