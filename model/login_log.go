package model

import (
	"time"
)

// Login log terminal statuses
const (
	LoginStatusSuccess = "success"
	LoginStatusFailed  = "failed"
)

// LoginLog is one authentication attempt and its outcome. Rows are
// append-only; logout_time is the single field backfilled later,
// correlated through the login_log_id token claim.
type LoginLog struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AdminID       uint       `gorm:"not null;index" json:"admin_id"` // 0 for attempts against unknown usernames
	IPAddress     string     `gorm:"type:varchar(45);not null" json:"ip_address"`
	UserAgent     string     `gorm:"type:text" json:"user_agent"`
	LoginTime     time.Time  `gorm:"index" json:"login_time"`
	LogoutTime    *time.Time `json:"logout_time"`
	Status        string     `gorm:"type:varchar(10);not null" json:"status"` // success, failed
	FailureReason string     `gorm:"type:varchar(100)" json:"failure_reason"`
	CreatedAt     time.Time  `json:"created_at"`

	// No FK constraint: admin_id 0 is a legal sentinel
	Admin *Admin `gorm:"foreignKey:AdminID;references:ID" json:"admin,omitempty"`
}

// TableName specifies the table name for LoginLog
func (LoginLog) TableName() string {
	return "admin_login_logs"
}
