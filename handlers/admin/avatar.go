package admin

import (
	"github.com/gofiber/fiber/v2"
	auth_handlers "github.com/hweilin/admin-console/handlers/auth"
	"github.com/hweilin/admin-console/services/policy"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
)

// UploadAvatar replaces a subordinate account's avatar
func (h *AdminHandler) UploadAvatar(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, errResp := h.loadTarget(c)
	if target == nil {
		return errResp
	}

	if denial := policy.CanModifyAvatar(actor, target); denial != nil {
		return denialResponse(c, denial)
	}

	if h.avatars == nil {
		return response.InternalServerError(c, "Avatar storage is not configured")
	}

	data, contentType, err := auth_handlers.ReadAvatarUpload(c)
	if err != nil {
		return response.BadRequest(c, "Avatar file is required")
	}

	key, err := h.avatars.Upload(c.Context(), target, data, contentType)
	if err != nil {
		return auth_handlers.HandleAvatarError(c, err)
	}

	return response.Success(c, "Avatar uploaded successfully", fiber.Map{
		"id":         target.ID,
		"avatar":     key,
		"avatar_url": h.avatars.URL(key),
	})
}

// DeleteAvatar removes a subordinate account's avatar
func (h *AdminHandler) DeleteAvatar(c *fiber.Ctx) error {
	actor, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, errResp := h.loadTarget(c)
	if target == nil {
		return errResp
	}

	if denial := policy.CanModifyAvatar(actor, target); denial != nil {
		return denialResponse(c, denial)
	}

	if h.avatars == nil {
		return response.InternalServerError(c, "Avatar storage is not configured")
	}

	if err := h.avatars.Delete(c.Context(), target); err != nil {
		return auth_handlers.HandleAvatarError(c, err)
	}

	return response.Success(c, "Avatar deleted successfully", nil)
}
