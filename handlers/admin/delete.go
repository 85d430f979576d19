package admin

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/services/policy"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
)

// deletedUsername frees the original username for reuse while keeping
// the row recognizable in the audit trail.
func deletedUsername(username string) string {
	return fmt.Sprintf("%s_deleted_%d", username, time.Now().UnixMilli())
}

// deletionNote appends a timestamped deletion marker to the existing
// notes so the soft-deleted row explains itself.
func deletionNote(notes string, at time.Time) string {
	marker := fmt.Sprintf("[deleted at %s]", at.Format("2006-01-02 15:04:05"))
	if notes == "" {
		return marker
	}
	return notes + " " + marker
}

// DeleteAdmin soft-deletes a subordinate account: the row survives for
// the audit trail but is disabled and its username released. Accounts
// that still manage subordinates cannot be deleted.
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, errResp := h.loadTarget(c)
	if target == nil {
		return errResp
	}

	if denial := policy.CanDelete(actor, target); denial != nil {
		return denialResponse(c, denial)
	}

	var subordinates int64
	if err := h.db.Model(&model.Admin{}).
		Where("manager_id = ?", target.ID).
		Count(&subordinates).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete administrator")
	}
	if denial := policy.DenySubordinates(subordinates); denial != nil {
		return denialResponse(c, denial)
	}

	updates := map[string]interface{}{
		"username":  deletedUsername(target.Username),
		"status":    model.StatusDisabled,
		"is_online": 0,
		"notes":     deletionNote(target.Notes, time.Now()),
	}
	if err := h.db.Model(&model.Admin{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete administrator")
	}

	return response.Success(c, "Administrator deleted successfully", nil)
}
