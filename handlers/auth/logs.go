package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/services/loginlog"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
)

// LoginLogEntry is the audit-trail projection returned to clients
type LoginLogEntry struct {
	ID            uint       `json:"id"`
	AdminID       uint       `json:"admin_id"`
	Username      string     `json:"username,omitempty"`
	IPAddress     string     `json:"ip_address"`
	UserAgent     string     `json:"user_agent"`
	LoginTime     time.Time  `json:"login_time"`
	LogoutTime    *time.Time `json:"logout_time"`
	Status        string     `json:"status"`
	FailureReason string     `json:"failure_reason,omitempty"`
}

func loginLogEntries(logs []model.LoginLog) []LoginLogEntry {
	entries := make([]LoginLogEntry, 0, len(logs))
	for _, l := range logs {
		entry := LoginLogEntry{
			ID:            l.ID,
			AdminID:       l.AdminID,
			IPAddress:     l.IPAddress,
			UserAgent:     l.UserAgent,
			LoginTime:     l.LoginTime,
			LogoutTime:    l.LogoutTime,
			Status:        l.Status,
			FailureReason: l.FailureReason,
		}
		if l.Admin != nil {
			entry.Username = l.Admin.Username
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseLogFilter(c *fiber.Ctx) loginlog.Filter {
	var f loginlog.Filter

	if status := c.Query("status"); status == model.LoginStatusSuccess || status == model.LoginStatusFailed {
		f.Status = status
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			f.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			// Inclusive end of day
			end := t.Add(24*time.Hour - time.Second)
			f.EndDate = &end
		}
	}

	return f
}

// ListLoginLogs returns the audit trail visible to the actor. Super
// admins see everything, supervisors see themselves plus the accounts
// they created, staff see only their own entries.
func (h *AuthHandler) ListLoginLogs(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	f := parseLogFilter(c)
	requestedID := uint(c.QueryInt("admin_id", 0))

	switch admin.RoleLevel {
	case model.RoleSuperAdmin:
		f.AdminID = requestedID
	case model.RoleSupervisor:
		var createdIDs []uint
		if err := h.db.Model(&model.Admin{}).
			Where("created_by = ?", admin.ID).
			Pluck("id", &createdIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to load login logs")
		}
		allowed := append(createdIDs, admin.ID)

		if requestedID != 0 {
			inScope := false
			for _, id := range allowed {
				if id == requestedID {
					inScope = true
					break
				}
			}
			if !inScope {
				return response.Forbidden(c, "No permission to view this administrator's login logs")
			}
			f.AdminID = requestedID
		} else {
			f.AdminIDIn = allowed
		}
	default:
		if requestedID != 0 && requestedID != admin.ID {
			return response.Forbidden(c, "No permission to view this administrator's login logs")
		}
		f.AdminID = admin.ID
	}

	logs, total, err := h.logs.List(c.Context(), f, page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load login logs")
	}

	h.attachUsernames(logs)

	p := response.CalculatePagination(page, limit, total)
	return response.Paginated(c, "", loginLogEntries(logs), p)
}

// MyLoginLogs returns only the actor's own audit entries
func (h *AuthHandler) MyLoginLogs(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	f := parseLogFilter(c)
	f.AdminID = admin.ID

	logs, total, err := h.logs.List(c.Context(), f, page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load login logs")
	}

	p := response.CalculatePagination(page, limit, total)
	return response.Paginated(c, "", loginLogEntries(logs), p)
}

// attachUsernames resolves admin ids to usernames for display. Entries
// with admin_id 0 (unknown username attempts) stay anonymous.
func (h *AuthHandler) attachUsernames(logs []model.LoginLog) {
	ids := make([]uint, 0, len(logs))
	seen := make(map[uint]bool)
	for _, l := range logs {
		if l.AdminID != 0 && !seen[l.AdminID] {
			seen[l.AdminID] = true
			ids = append(ids, l.AdminID)
		}
	}
	if len(ids) == 0 {
		return
	}

	var admins []model.Admin
	if err := h.db.Select("id", "username").Where("id IN ?", ids).Find(&admins).Error; err != nil {
		return
	}
	byID := make(map[uint]*model.Admin, len(admins))
	for i := range admins {
		byID[admins[i].ID] = &admins[i]
	}

	for i := range logs {
		if a, ok := byID[logs[i].AdminID]; ok {
			logs[i].Admin = a
		}
	}
}
