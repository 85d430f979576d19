package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/services/policy"
	authutil "github.com/hweilin/admin-console/utils/auth"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
	"github.com/hweilin/admin-console/utils/validation"
	"gorm.io/gorm"
)

// loadTarget resolves the :id route parameter to an account row
func (h *AdminHandler) loadTarget(c *fiber.Ctx) (*model.Admin, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, response.BadRequest(c, "Invalid administrator id")
	}

	var target model.Admin
	if err := h.db.First(&target, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NotFound(c, "Administrator not found")
		}
		return nil, response.InternalServerError(c, "Failed to load administrator")
	}
	return &target, nil
}

// UpdateAdminRequest carries the editable profile fields. Username and
// role level are fixed at creation; status has its own endpoint.
// Pointer fields distinguish "omitted" from "set to empty": only the
// fields present in the request are written.
type UpdateAdminRequest struct {
	RealName   *string `json:"real_name" validate:"omitempty,max=50"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Email      *string `json:"email" validate:"omitempty,email,max=100"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,max=20"`
	Department *string `json:"department" validate:"omitempty,max=50"`
	Notes      *string `json:"notes"`
}

// fieldUpdates builds the column map from the fields the request
// actually carried.
func (r UpdateAdminRequest) fieldUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.RealName != nil {
		updates["real_name"] = *r.RealName
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.EmployeeID != nil {
		updates["employee_id"] = *r.EmployeeID
	}
	if r.Department != nil {
		updates["department"] = *r.Department
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	return updates
}

// UpdateAdmin edits a subordinate account's profile fields
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, errResp := h.loadTarget(c)
	if target == nil {
		return errResp
	}

	var req UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}
	if req.RealName != nil && *req.RealName == "" {
		return response.BadRequest(c, "Real name cannot be empty")
	}

	if denial := policy.CanUpdate(actor, target); denial != nil {
		return denialResponse(c, denial)
	}

	var count int64
	if req.Phone != nil && *req.Phone != "" {
		if err := h.db.Model(&model.Admin{}).
			Where("phone = ? AND id <> ?", *req.Phone, target.ID).
			Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to update administrator")
		}
		if count > 0 {
			return response.Conflict(c, "Phone number already in use")
		}
	}
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		if err := h.db.Model(&model.Admin{}).
			Where("employee_id = ? AND id <> ?", *req.EmployeeID, target.ID).
			Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to update administrator")
		}
		if count > 0 {
			return response.Conflict(c, "Employee ID already exists")
		}
	}

	updates := req.fieldUpdates()
	if len(updates) > 0 {
		if err := h.db.Model(&model.Admin{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
			return response.InternalServerError(c, "Failed to update administrator")
		}
	}

	if req.RealName != nil {
		target.RealName = *req.RealName
	}
	if req.Phone != nil {
		target.Phone = *req.Phone
	}
	if req.Email != nil {
		target.Email = *req.Email
	}
	if req.EmployeeID != nil {
		target.EmployeeID = *req.EmployeeID
	}
	if req.Department != nil {
		target.Department = *req.Department
	}
	if req.Notes != nil {
		target.Notes = *req.Notes
	}

	return response.Success(c, "Administrator updated successfully", h.adminResponse(target))
}

// ResetPasswordRequest represents an administrative password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ResetPassword sets a new password on a subordinate account without
// requiring the old one.
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, errResp := h.loadTarget(c)
	if target == nil {
		return errResp
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.NewPassword == "" {
		return response.BadRequest(c, "New password is required")
	}
	if !authutil.IsPasswordValid(req.NewPassword) {
		return response.BadRequest(c, "Password must be at least 6 characters")
	}

	if denial := policy.CanResetPassword(actor, target); denial != nil {
		return denialResponse(c, denial)
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to reset password")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"password_hash":       hash,
		"password_changed_at": &now,
	}
	if err := h.db.Model(&model.Admin{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to reset password")
	}

	return response.Success(c, "Password reset successfully", nil)
}

// ChangeStatusRequest represents an enable/disable request
type ChangeStatusRequest struct {
	Status *int `json:"status"`
}

// ChangeStatus enables or disables a subordinate account. Disabling
// also drops the online flag; outstanding tokens die at the auth gate.
func (h *AdminHandler) ChangeStatus(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, errResp := h.loadTarget(c)
	if target == nil {
		return errResp
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Status == nil || (*req.Status != model.StatusDisabled && *req.Status != model.StatusActive) {
		return response.BadRequest(c, "Status must be 0 or 1")
	}

	if denial := policy.CanChangeStatus(actor, target); denial != nil {
		return denialResponse(c, denial)
	}

	updates := map[string]interface{}{"status": *req.Status}
	if *req.Status == model.StatusDisabled {
		updates["is_online"] = 0
	}
	if err := h.db.Model(&model.Admin{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to change status")
	}

	message := "Administrator enabled successfully"
	if *req.Status == model.StatusDisabled {
		message = "Administrator disabled successfully"
	}
	return response.Success(c, message, fiber.Map{
		"id":     target.ID,
		"status": *req.Status,
	})
}
