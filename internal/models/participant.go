package models

import "time"

// Participant is a person invited to an approved request. Existence implies
// confirmation; there is no status field and no dedup by email.
type Participant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID uint      `gorm:"not null;index" json:"request_id"`
	FullName  string    `gorm:"size:120;not null" json:"full_name"`
	Email     string    `gorm:"size:200;not null" json:"email"`
	Phone     string    `gorm:"size:40;not null" json:"phone"`
	InvitedBy uint      `gorm:"not null;index" json:"invited_by"`
	Inviter   *Profile  `gorm:"foreignKey:InvitedBy" json:"inviter,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Participant) TableName() string {
	return "participants"
}
