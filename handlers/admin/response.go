package admin

import (
	"time"

	"github.com/hweilin/admin-console/model"
)

// AdminSummary is the short form used for creator/manager references
type AdminSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	RealName string `json:"real_name"`
}

// AdminResponse is the managed view of an administrator account
type AdminResponse struct {
	ID             uint          `json:"id"`
	Username       string        `json:"username"`
	RealName       string        `json:"real_name"`
	RoleLevel      int           `json:"role_level"`
	Status         int           `json:"status"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	EmployeeID     string        `json:"employee_id"`
	Department     string        `json:"department"`
	Notes          string        `json:"notes"`
	AvatarURL      string        `json:"avatar_url"`
	Creator        *AdminSummary `json:"creator,omitempty"`
	Manager        *AdminSummary `json:"manager,omitempty"`
	LastLoginAt    *time.Time    `json:"last_login_at"`
	LastLoginIP    string        `json:"last_login_ip"`
	CurrentLoginAt *time.Time    `json:"current_login_at"`
	LoginCount     int           `json:"login_count"`
	IsOnline       int           `json:"is_online"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func summary(a *model.Admin) *AdminSummary {
	if a == nil {
		return nil
	}
	return &AdminSummary{
		ID:       a.ID,
		Username: a.Username,
		RealName: a.RealName,
	}
}

func (h *AdminHandler) adminResponse(a *model.Admin) AdminResponse {
	return AdminResponse{
		ID:             a.ID,
		Username:       a.Username,
		RealName:       a.RealName,
		RoleLevel:      a.RoleLevel,
		Status:         a.Status,
		Email:          a.Email,
		Phone:          a.Phone,
		EmployeeID:     a.EmployeeID,
		Department:     a.Department,
		Notes:          a.Notes,
		AvatarURL:      h.avatarURL(a.Avatar),
		Creator:        summary(a.Creator),
		Manager:        summary(a.Manager),
		LastLoginAt:    a.LastLoginAt,
		LastLoginIP:    a.LastLoginIP,
		CurrentLoginAt: a.CurrentLoginAt,
		LoginCount:     a.LoginCount,
		IsOnline:       a.IsOnline,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (h *AdminHandler) adminResponses(admins []model.Admin) []AdminResponse {
	out := make([]AdminResponse, 0, len(admins))
	for i := range admins {
		out = append(out, h.adminResponse(&admins[i]))
	}
	return out
}
