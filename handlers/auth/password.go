package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	authutil "github.com/hweilin/admin-console/utils/auth"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
)

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the authenticated administrator's own
// password after verifying the current one.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Current and new passwords are required")
	}

	if !authutil.IsPasswordValid(req.NewPassword) {
		return response.BadRequest(c, "Password must be at least 6 characters")
	}

	if err := authutil.VerifyPassword(admin.PasswordHash, req.CurrentPassword); err != nil {
		return response.BadRequest(c, "Current password is incorrect")
	}

	if req.NewPassword == req.CurrentPassword {
		return response.BadRequest(c, "New password must be different from the current password")
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to change password")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"password_hash":       hash,
		"password_changed_at": &now,
	}
	if err := h.db.Model(&model.Admin{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to change password")
	}

	return response.Success(c, "Password changed successfully", nil)
}
