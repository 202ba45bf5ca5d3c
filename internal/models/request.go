// Package models contains data structures for the application's domain models.
package models

import "time"

// RequestKind distinguishes the two submission flows sharing the requests table.
type RequestKind string

const (
	// RequestKindEvent is a request to host an event.
	RequestKindEvent RequestKind = "event"
	// RequestKindLoan is a request to borrow equipment or funds.
	RequestKindLoan RequestKind = "loan"
)

// RequestStatus defines lifecycle states for submitted requests.
type RequestStatus string

const (
	// RequestStatusPending indicates the request is awaiting review.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusApproved indicates the request was accepted.
	RequestStatusApproved RequestStatus = "approved"
	// RequestStatusRejected indicates the request was denied.
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid reports whether the status is one of the three known states.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// OrPending resolves empty or unknown statuses to pending. Rows written by
// older clients may carry a null status; consumers treat that as pending.
func (s RequestStatus) OrPending() RequestStatus {
	if !s.Valid() {
		return RequestStatusPending
	}
	return s
}

// Request is a user-submitted event or loan request awaiting review.
type Request struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Kind        RequestKind   `gorm:"type:varchar(10);not null;default:'event';index" json:"kind"`
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Location    string        `gorm:"size:200;not null" json:"location"`
	Category    string        `gorm:"size:40;not null" json:"category"`
	Amount      *float64      `json:"amount,omitempty"`
	DateTime    time.Time     `gorm:"not null" json:"date_time"`
	ImageURL    *string       `json:"image_url"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	Profile     *Profile      `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	// Version is bumped on every mutation; conditional updates compare it.
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Request) TableName() string {
	return "requests"
}

// RequestStats aggregates per-status counts for the review dashboard.
type RequestStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
