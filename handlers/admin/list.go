package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/services/policy"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
	"gorm.io/gorm"
)

// ListAdmins returns one page of administrator accounts within the
// actor's visibility scope, with optional filters.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
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

	query := h.db.Model(&model.Admin{})

	switch policy.ListingScope(actor) {
	case policy.ScopeCreated:
		query = query.Where("created_by = ?", actor.ID)
	case policy.ScopeSelf:
		query = query.Where("id = ?", actor.ID)
	}

	if roleLevel := c.QueryInt("role_level", 0); roleLevel != 0 {
		query = query.Where("role_level = ?", roleLevel)
	}
	if status := c.Query("status"); status == "0" || status == "1" {
		query = query.Where("status = ?", status)
	}
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if keyword := c.Query("keyword"); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where(
			"username ILIKE ? OR real_name ILIKE ? OR phone ILIKE ? OR employee_id ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to list administrators")
	}

	var admins []model.Admin
	if err := query.
		Preload("Creator").
		Preload("Manager").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&admins).Error; err != nil {
		return response.InternalServerError(c, "Failed to list administrators")
	}

	p := response.CalculatePagination(page, limit, total)
	return response.Paginated(c, "", h.adminResponses(admins), p)
}

// GetAdmin returns one administrator's full record. Absent rows give a
// 404; rows outside the actor's scope give a 403.
func (h *AdminHandler) GetAdmin(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid administrator id")
	}

	var target model.Admin
	if err := h.db.Preload("Creator").Preload("Manager").First(&target, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Administrator not found")
		}
		return response.InternalServerError(c, "Failed to load administrator")
	}

	if denial := policy.CanViewDetail(actor, &target); denial != nil {
		return denialResponse(c, denial)
	}

	return response.Success(c, "", h.adminResponse(&target))
}
