// Package admin implements hierarchical administrator management:
// downward-only account creation, scoped listing and detail reads,
// profile/password/status mutation, soft deletion and avatar
// management on behalf of subordinate accounts.
package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/services/avatar"
	"github.com/hweilin/admin-console/services/policy"
	"github.com/hweilin/admin-console/utils/response"
	"github.com/hweilin/admin-console/utils/validation"
	"gorm.io/gorm"
)

// AdminHandler handles administrator management requests
type AdminHandler struct {
	db        *gorm.DB
	avatars   *avatar.Service
	validator *validation.Validator
}

// NewAdminHandler creates a new admin handler. avatars may be nil when
// blob storage is not configured.
func NewAdminHandler(db *gorm.DB, avatars *avatar.Service) *AdminHandler {
	return &AdminHandler{
		db:        db,
		avatars:   avatars,
		validator: validation.NewValidator(),
	}
}

func (h *AdminHandler) avatarURL(key string) string {
	if h.avatars == nil {
		return ""
	}
	return h.avatars.URL(key)
}

// denialResponse maps a policy denial onto the matching HTTP status
func denialResponse(c *fiber.Ctx, d *policy.Denial) error {
	switch d.Kind {
	case policy.Invalid:
		return response.BadRequest(c, d.Reason)
	case policy.Conflict:
		return response.Conflict(c, d.Reason)
	default:
		return response.Forbidden(c, d.Reason)
	}
}
