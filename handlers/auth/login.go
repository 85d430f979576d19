package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/services/loginlog"
	authutil "github.com/hweilin/admin-console/utils/auth"
	"github.com/hweilin/admin-console/utils/middleware"
	"github.com/hweilin/admin-console/utils/response"
	"gorm.io/gorm"
)

// LoginRequest represents an administrator login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionAdmin is the account projection returned with a new session
type SessionAdmin struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	RealName    string     `json:"real_name"`
	RoleLevel   int        `json:"role_level"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Department  string     `json:"department"`
	AvatarURL   string     `json:"avatar_url"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // in seconds
	Admin     SessionAdmin `json:"admin"`
}

// Login authenticates an administrator and opens a session. Every
// attempt, successful or not, lands in the audit trail; the client only
// ever sees a generic failure message so usernames cannot be probed.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ip := c.IP()
	userAgent := c.Get("User-Agent")
	ctx := c.Context()

	if req.Username == "" || req.Password == "" {
		h.logs.RecordFailure(ctx, 0, ip, userAgent, loginlog.ReasonEmptyCredentials)
		return response.BadRequest(c, "Username and password are required")
	}

	var admin model.Admin
	if err := h.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			h.logs.RecordFailure(ctx, 0, ip, userAgent, loginlog.ReasonUnknownUsername)
			if h.bruteForceProtection != nil {
				h.bruteForceProtection.RecordFailedAttempt(c, ip)
			}
			return response.Unauthorized(c, "Invalid username or password")
		}
		return response.InternalServerError(c, "Failed to load account")
	}

	if !admin.IsActive() {
		h.logs.RecordFailure(ctx, admin.ID, ip, userAgent, loginlog.ReasonDisabledAccount)
		return response.Unauthorized(c, "Account is disabled")
	}

	if err := authutil.VerifyPassword(admin.PasswordHash, req.Password); err != nil {
		h.logs.RecordFailure(ctx, admin.ID, ip, userAgent, loginlog.ReasonWrongPassword)
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Invalid username or password")
	}

	// Clear failed attempts on successful login
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	// Shift the previous session's metadata into the last_* slots
	// before overwriting the current ones
	now := time.Now()
	updates := map[string]interface{}{
		"last_login_at":    admin.CurrentLoginAt,
		"last_login_ip":    admin.CurrentLoginIP,
		"current_login_at": &now,
		"current_login_ip": ip,
		"login_count":      gorm.Expr("login_count + 1"),
		"is_online":        1,
	}
	if err := h.db.Model(&model.Admin{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update login metadata")
	}

	logID, err := h.logs.RecordSuccess(ctx, admin.ID, ip, userAgent)
	if err != nil {
		return response.InternalServerError(c, "Failed to record login")
	}

	token, err := h.jwtManager.GenerateToken(admin.ID, admin.Username, admin.RoleLevel, logID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	res := LoginResponse{
		Token:     token,
		ExpiresIn: int(h.jwtManager.Expiry().Seconds()),
		Admin: SessionAdmin{
			ID:          admin.ID,
			Username:    admin.Username,
			RealName:    admin.RealName,
			RoleLevel:   admin.RoleLevel,
			Email:       admin.Email,
			Phone:       admin.Phone,
			Department:  admin.Department,
			AvatarURL:   h.avatarURL(admin.Avatar),
			LastLoginAt: admin.CurrentLoginAt, // what was current is now last
		},
	}

	return response.Success(c, "Login successful", res)
}

// Logout closes the current session: the online flag drops and the
// audit entry the token references gets its logout time backfilled.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	if err := h.db.Model(&model.Admin{}).Where("id = ?", admin.ID).Update("is_online", 0).Error; err != nil {
		return response.InternalServerError(c, "Failed to log out")
	}

	// Backfill is best-effort: a missing audit row must not keep the
	// administrator logged in
	if claims, ok := middleware.GetClaims(c); ok && claims.LoginLogID != 0 {
		h.logs.MarkLogout(c.Context(), claims.LoginLogID)
	}

	return response.Success(c, "Logout successful", nil)
}

// Me returns the authenticated administrator's own profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	return response.Success(c, "", h.profileResponse(admin))
}

// Verify confirms the token is still good and echoes its identity.
// Reaching this handler at all means the middleware accepted the
// session and the account is still active.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	return response.Success(c, "Token is valid", fiber.Map{
		"admin_id":   claims.AdminID,
		"username":   claims.Username,
		"role_level": claims.RoleLevel,
	})
}
