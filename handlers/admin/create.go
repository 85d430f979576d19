package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/services/policy"
	authutil "github.com/hweilin/admin-console/utils/auth"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
	"github.com/hweilin/admin-console/utils/validation"
	"gorm.io/gorm"
)

// CreateAdminRequest represents a new administrator account
type CreateAdminRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=100"`
	Password   string `json:"password" validate:"required,min=6"`
	RealName   string `json:"real_name" validate:"required,max=50"`
	RoleLevel  int    `json:"role_level" validate:"required,oneof=2 3"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Email      string `json:"email" validate:"omitempty,email,max=100"`
	EmployeeID string `json:"employee_id" validate:"omitempty,max=20"`
	Department string `json:"department" validate:"omitempty,max=50"`
	Notes      string `json:"notes"`
}

// CreateAdmin creates a subordinate account. The new account is owned
// and managed by the actor; creation is only ever downward in the
// hierarchy.
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	if denial := policy.CanCreate(actor, req.RoleLevel); denial != nil {
		return denialResponse(c, denial)
	}

	// Pre-checks give friendly messages; the unique index is the real
	// guard against concurrent creates
	var count int64
	if err := h.db.Model(&model.Admin{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to create administrator")
	}
	if count > 0 {
		return response.Conflict(c, "Username already exists")
	}

	if req.EmployeeID != "" {
		if err := h.db.Model(&model.Admin{}).Where("employee_id = ?", req.EmployeeID).Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to create administrator")
		}
		if count > 0 {
			return response.Conflict(c, "Employee ID already exists")
		}
	}

	if req.Phone != "" {
		if err := h.db.Model(&model.Admin{}).Where("phone = ?", req.Phone).Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to create administrator")
		}
		if count > 0 {
			return response.Conflict(c, "Phone number already in use")
		}
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to create administrator")
	}

	actorID := actor.ID
	newAdmin := model.Admin{
		Username:     req.Username,
		PasswordHash: hash,
		RealName:     req.RealName,
		RoleLevel:    req.RoleLevel,
		Status:       model.StatusActive,
		Phone:        req.Phone,
		Email:        req.Email,
		EmployeeID:   req.EmployeeID,
		Department:   req.Department,
		Notes:        req.Notes,
		CreatedBy:    &actorID,
		ManagerID:    &actorID,
	}

	if err := h.db.Create(&newAdmin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Username, employee ID or phone already in use")
		}
		return response.InternalServerError(c, "Failed to create administrator")
	}

	newAdmin.Creator = actor
	newAdmin.Manager = actor

	return response.Created(c, "Administrator created successfully", h.adminResponse(&newAdmin))
}
