// Package auth handles the session lifecycle for administrator
// accounts: login with audit recording, logout, self-service profile
// and password management, and the current-session avatar endpoints.
package auth

import (
	"github.com/hweilin/admin-console/services/avatar"
	"github.com/hweilin/admin-console/services/loginlog"
	authutil "github.com/hweilin/admin-console/utils/auth"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	logs                 *loginlog.Service
	bruteForceProtection *middleware.BruteForceProtection
	avatars              *avatar.Service
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler. bruteForceProtection and
// avatars may be nil when Redis or blob storage is not configured.
func NewAuthHandler(
	db *gorm.DB,
	jwtManager *authutil.JWTManager,
	logs *loginlog.Service,
	bruteForceProtection *middleware.BruteForceProtection,
	avatars *avatar.Service,
) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		logs:                 logs,
		bruteForceProtection: bruteForceProtection,
		avatars:              avatars,
		validator:            validation.NewValidator(),
	}
}

func (h *AuthHandler) avatarURL(key string) string {
	if h.avatars == nil {
		return ""
	}
	return h.avatars.URL(key)
}
