package model

import (
	"time"
)

// Role levels. Lower number means higher privilege.
const (
	RoleSuperAdmin = 1
	RoleSupervisor = 2
	RoleStaff      = 3
)

// Account status values
const (
	StatusDisabled = 0
	StatusActive   = 1
)

// Admin represents an administrator account in the management hierarchy
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password in JSON
	RealName     string    `gorm:"type:varchar(50);not null" json:"real_name"`
	Phone        string    `gorm:"type:varchar(20);uniqueIndex:uni_admins_phone,where:phone <> ''" json:"phone"`
	Email        string    `gorm:"type:varchar(100)" json:"email"`
	EmployeeID   string    `gorm:"type:varchar(20);uniqueIndex:uni_admins_employee_id,where:employee_id <> ''" json:"employee_id"`
	RoleLevel    int       `gorm:"not null" json:"role_level"` // 1=super admin, 2=supervisor, 3=staff
	Status       int       `gorm:"default:1" json:"status"`    // 1=active, 0=disabled
	CreatedBy    *uint     `gorm:"index" json:"created_by"`    // null for seed accounts
	ManagerID    *uint     `gorm:"index" json:"manager_id"`
	Avatar       string    `gorm:"type:varchar(255)" json:"avatar"` // blob object key, empty when unset
	Department   string    `gorm:"type:varchar(50)" json:"department"`
	Notes        string    `gorm:"type:text" json:"notes"`

	LastLoginAt       *time.Time `json:"last_login_at"`
	LastLoginIP       string     `gorm:"type:varchar(45)" json:"last_login_ip"`
	CurrentLoginAt    *time.Time `json:"current_login_at"`
	CurrentLoginIP    string     `gorm:"type:varchar(45)" json:"current_login_ip"`
	LoginCount        int        `gorm:"default:0" json:"login_count"`
	IsOnline          int        `gorm:"default:0" json:"is_online"`
	PasswordChangedAt *time.Time `json:"password_changed_at"`

	// Self-referential relationships, resolved via store lookup
	Creator *Admin `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Manager *Admin `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

// TableName specifies the table name for Admin
func (Admin) TableName() string {
	return "admins"
}

// IsActive reports whether the account may authenticate
func (a *Admin) IsActive() bool {
	return a.Status == StatusActive
}

// CreatedByID returns the creator id, 0 when the account was seeded
func (a *Admin) CreatedByID() uint {
	if a.CreatedBy == nil {
		return 0
	}
	return *a.CreatedBy
}
