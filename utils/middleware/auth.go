package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/utils/auth"
	"github.com/hweilin/admin-console/utils/response"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	db         *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		db:         db,
	}
}

// Required is middleware that requires a valid JWT token resolving to
// a live, active administrator. The resolved admin becomes the acting
// principal for downstream policy checks.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		tokenString := parts[1]

		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// A disabled account's outstanding tokens stop working here,
		// even though they remain cryptographically valid until expiry.
		var admin model.Admin
		if err := m.db.First(&admin, claims.AdminID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return response.Unauthorized(c, "Account not found")
			}
			return response.InternalServerError(c, "Failed to load account")
		}

		if !admin.IsActive() {
			return response.Unauthorized(c, "Account is disabled")
		}

		c.Locals("admin", &admin)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// RequireLevel restricts a route to administrators at or above the
// given privilege tier (numerically at most maxLevel).
func (m *AuthMiddleware) RequireLevel(maxLevel int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := GetAdmin(c)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}
		if admin.RoleLevel > maxLevel {
			return response.Forbidden(c, "Insufficient permissions")
		}
		return c.Next()
	}
}

// GetAdmin extracts the authenticated administrator from context
func GetAdmin(c *fiber.Ctx) (*model.Admin, bool) {
	admin := c.Locals("admin")
	if admin == nil {
		return nil, false
	}
	a, ok := admin.(*model.Admin)
	return a, ok
}

// GetClaims extracts the session claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims := c.Locals("claims")
	if claims == nil {
		return nil, false
	}
	cl, ok := claims.(*auth.Claims)
	return cl, ok
}
