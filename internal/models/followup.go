package models

import "time"

// Followup status constants
const (
	FollowupStatusPending   = "pending"
	FollowupStatusCompleted = "completed"
)

// FollowupMessageMaxLen bounds the reminder text
const FollowupMessageMaxLen = 2000

// Followup is a reminder to contact a customer on a due date.
// Status moves pending -> completed once and never back.
type Followup struct {
	ID            int64      `json:"id"`
	CustomerID    int64      `json:"customer_id"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone *string    `json:"phone,omitempty"`
	DueDate       Date       `json:"due_date"`
	Message       *string    `json:"message"`
	Status        string     `json:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FollowupInput is the validated and sanitized payload for followup creation
type FollowupInput struct {
	CustomerID int64
	DueDate    time.Time
	Message    *string
}

// IsCompleted reports whether the followup reached its terminal state
func (f *Followup) IsCompleted() bool {
	return f.Status == FollowupStatusCompleted
}

// IsValidFollowupStatus checks if the followup status is valid
func IsValidFollowupStatus(status string) bool {
	return status == FollowupStatusPending || status == FollowupStatusCompleted
}
