package auth

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/services/avatar"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
)

// ReadAvatarUpload pulls the avatar file out of a multipart form and
// returns its bytes and declared content type.
func ReadAvatarUpload(c *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return nil, "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, avatar.MaxSize+1))
	if err != nil {
		return nil, "", err
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}

// HandleAvatarError maps avatar service errors onto API responses
func HandleAvatarError(c *fiber.Ctx, err error) error {
	switch err {
	case avatar.ErrUnsupportedType:
		return response.BadRequest(c, "Avatar must be a JPEG, PNG, GIF or WebP image")
	case avatar.ErrTooLarge:
		return response.BadRequest(c, "Avatar must not exceed 5 MB")
	case avatar.ErrNoAvatar:
		return response.NotFound(c, "No avatar set")
	default:
		return response.InternalServerError(c, "Avatar operation failed")
	}
}

// UploadAvatar replaces the authenticated administrator's own avatar
func (h *AuthHandler) UploadAvatar(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	if h.avatars == nil {
		return response.InternalServerError(c, "Avatar storage is not configured")
	}

	data, contentType, err := ReadAvatarUpload(c)
	if err != nil {
		return response.BadRequest(c, "Avatar file is required")
	}

	key, err := h.avatars.Upload(c.Context(), admin, data, contentType)
	if err != nil {
		return HandleAvatarError(c, err)
	}

	return response.Success(c, "Avatar uploaded successfully", fiber.Map{
		"avatar":     key,
		"avatar_url": h.avatars.URL(key),
	})
}

// DeleteAvatar removes the authenticated administrator's own avatar
func (h *AuthHandler) DeleteAvatar(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	if h.avatars == nil {
		return response.InternalServerError(c, "Avatar storage is not configured")
	}

	if err := h.avatars.Delete(c.Context(), admin); err != nil {
		return HandleAvatarError(c, err)
	}

	return response.Success(c, "Avatar deleted successfully", nil)
}
