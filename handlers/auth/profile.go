package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
	"github.com/hweilin/admin-console/utils/validation"
)

// ProfileResponse is the full self-view of an administrator account
type ProfileResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	RealName    string     `json:"real_name"`
	RoleLevel   int        `json:"role_level"`
	Status      int        `json:"status"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	EmployeeID  string     `json:"employee_id"`
	Department  string     `json:"department"`
	Notes       string     `json:"notes"`
	AvatarURL   string     `json:"avatar_url"`
	LastLoginAt *time.Time `json:"last_login_at"`
	LastLoginIP string     `json:"last_login_ip"`
	LoginCount  int        `json:"login_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (h *AuthHandler) profileResponse(a *model.Admin) ProfileResponse {
	return ProfileResponse{
		ID:          a.ID,
		Username:    a.Username,
		RealName:    a.RealName,
		RoleLevel:   a.RoleLevel,
		Status:      a.Status,
		Email:       a.Email,
		Phone:       a.Phone,
		EmployeeID:  a.EmployeeID,
		Department:  a.Department,
		Notes:       a.Notes,
		AvatarURL:   h.avatarURL(a.Avatar),
		LastLoginAt: a.LastLoginAt,
		LastLoginIP: a.LastLoginIP,
		LoginCount:  a.LoginCount,
		CreatedAt:   a.CreatedAt,
	}
}

// UpdateProfileRequest carries the self-editable profile fields.
// Username, role level and status are never editable through here.
// Pointer fields distinguish "omitted" from "set to empty": only the
// fields present in the request are written.
type UpdateProfileRequest struct {
	RealName   *string `json:"real_name" validate:"omitempty,max=50"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Email      *string `json:"email" validate:"omitempty,email,max=100"`
	Department *string `json:"department" validate:"omitempty,max=50"`
	Notes      *string `json:"notes"`
}

// fieldUpdates builds the column map from the fields the request
// actually carried.
func (r UpdateProfileRequest) fieldUpdates() map[string]interface{} {
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
	if r.Department != nil {
		updates["department"] = *r.Department
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	return updates
}

// UpdateProfile lets an administrator edit their own contact fields
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}
	if req.RealName != nil && *req.RealName == "" {
		return response.BadRequest(c, "Real name cannot be empty")
	}

	if req.Phone != nil && *req.Phone != "" {
		var count int64
		if err := h.db.Model(&model.Admin{}).
			Where("phone = ? AND id <> ?", *req.Phone, admin.ID).
			Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to update profile")
		}
		if count > 0 {
			return response.Conflict(c, "Phone number already in use")
		}
	}

	updates := req.fieldUpdates()
	if len(updates) > 0 {
		if err := h.db.Model(&model.Admin{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	if req.RealName != nil {
		admin.RealName = *req.RealName
	}
	if req.Phone != nil {
		admin.Phone = *req.Phone
	}
	if req.Email != nil {
		admin.Email = *req.Email
	}
	if req.Department != nil {
		admin.Department = *req.Department
	}
	if req.Notes != nil {
		admin.Notes = *req.Notes
	}

	return response.Success(c, "Profile updated successfully", h.profileResponse(admin))
}
