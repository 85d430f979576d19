package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hweilin/admin-console/config"
	"github.com/hweilin/admin-console/database"
	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/router"
	"github.com/hweilin/admin-console/utils/auth"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// End-to-end exercise of the management hierarchy against a live
// Postgres. Enable with RUN_INTEGRATION_TESTS=true and the usual DB_*
// and JWT_SECRET environment variables.

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	prefix string
}

func setupIntegrationEnv(t *testing.T) *testEnv {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test; set RUN_INTEGRATION_TESTS=true to run")
	}

	godotenv.Load("../.env")

	for _, v := range []string{"DB_HOST", "DB_USER_NAME", "DB_NAME", "JWT_SECRET"} {
		if os.Getenv(v) == "" {
			t.Skipf("Skipping integration test; %s is not set", v)
		}
	}

	store, err := database.StartGORM()
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Init(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		t.Fatal("failed to get GORM DB instance")
	}

	env, err := config.Get()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	app := fiber.New(fiber.Config{BodyLimit: 8 * 1024 * 1024})
	router.SetupRoutes(app, store, env)

	prefix := fmt.Sprintf("it%d", time.Now().UnixNano()%1_000_000_000)
	te := &testEnv{app: app, db: db, prefix: prefix}
	t.Cleanup(te.cleanup)

	return te
}

func (te *testEnv) cleanup() {
	var ids []uint
	te.db.Model(&model.Admin{}).Where("username LIKE ?", te.prefix+"%").Pluck("id", &ids)
	if len(ids) > 0 {
		te.db.Where("admin_id IN ?", ids).Delete(&model.LoginLog{})
		te.db.Where("id IN ?", ids).Delete(&model.Admin{})
	}
}

// seedRoot inserts a level-1 account directly; everything else in the
// test descends from it through the API.
func (te *testEnv) seedRoot(t *testing.T, username, password string) uint {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	root := model.Admin{
		Username:     username,
		PasswordHash: hash,
		RealName:     "Integration Root",
		RoleLevel:    model.RoleSuperAdmin,
		Status:       model.StatusActive,
	}
	if err := te.db.Create(&root).Error; err != nil {
		t.Fatalf("failed to seed root admin: %v", err)
	}
	return root.ID
}

func (te *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := te.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var parsed map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func (te *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	status, body := te.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login as %s: status = %d, body = %v", username, status, body)
	}

	data, _ := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("login as %s returned no token", username)
	}
	return token
}

func dataID(body map[string]interface{}) uint {
	data, _ := body["data"].(map[string]interface{})
	id, _ := data["id"].(float64)
	return uint(id)
}

func TestAdminHierarchyFlow(t *testing.T) {
	te := setupIntegrationEnv(t)

	rootUser := te.prefix + "root"
	te.seedRoot(t, rootUser, "rootpass123")

	rootToken := te.login(t, rootUser, "rootpass123")

	// Root creates a supervisor
	supUser := te.prefix + "sup"
	status, body := te.request(t, http.MethodPost, "/api/admin/create", rootToken, fiber.Map{
		"username":   supUser,
		"password":   "suppass123",
		"real_name":  "Supervisor One",
		"role_level": model.RoleSupervisor,
	})
	if status != http.StatusCreated {
		t.Fatalf("create supervisor: status = %d, body = %v", status, body)
	}
	supID := dataID(body)

	// Duplicate username is rejected
	status, _ = te.request(t, http.MethodPost, "/api/admin/create", rootToken, fiber.Map{
		"username":   supUser,
		"password":   "suppass123",
		"real_name":  "Supervisor Clone",
		"role_level": model.RoleSupervisor,
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate username: status = %d, want 409", status)
	}

	// Supervisor creates a staff account
	supToken := te.login(t, supUser, "suppass123")
	staffUser := te.prefix + "staff"
	status, body = te.request(t, http.MethodPost, "/api/admin/create", supToken, fiber.Map{
		"username":   staffUser,
		"password":   "staffpass123",
		"real_name":  "Staff One",
		"role_level": model.RoleStaff,
	})
	if status != http.StatusCreated {
		t.Fatalf("create staff: status = %d, body = %v", status, body)
	}
	staffID := dataID(body)

	// Supervisor cannot create another supervisor
	status, _ = te.request(t, http.MethodPost, "/api/admin/create", supToken, fiber.Map{
		"username":   te.prefix + "peer",
		"password":   "peerpass123",
		"real_name":  "Peer",
		"role_level": model.RoleSupervisor,
	})
	if status != http.StatusForbidden {
		t.Fatalf("supervisor creating supervisor: status = %d, want 403", status)
	}

	// Staff cannot reach management routes at all
	staffToken := te.login(t, staffUser, "staffpass123")
	status, _ = te.request(t, http.MethodGet, "/api/admin/list", staffToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("staff listing admins: status = %d, want 403", status)
	}

	// Staff can still read their own detail
	status, _ = te.request(t, http.MethodGet, fmt.Sprintf("/api/admin/%d", staffID), staffToken, nil)
	if status != http.StatusOK {
		t.Fatalf("staff reading own detail: status = %d, want 200", status)
	}

	// ...but not the supervisor's
	status, _ = te.request(t, http.MethodGet, fmt.Sprintf("/api/admin/%d", supID), staffToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("staff reading supervisor detail: status = %d, want 403", status)
	}

	// Deleting the supervisor while the staff account reports to them
	// is blocked
	status, _ = te.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/%d", supID), rootToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("delete supervisor with subordinates: status = %d, want 409", status)
	}

	// Delete bottom-up
	status, _ = te.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/%d", staffID), supToken, nil)
	if status != http.StatusOK {
		t.Fatalf("delete staff: status = %d, want 200", status)
	}
	status, _ = te.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/%d", supID), rootToken, nil)
	if status != http.StatusOK {
		t.Fatalf("delete supervisor: status = %d, want 200", status)
	}

	// The freed username is immediately reusable
	status, _ = te.request(t, http.MethodPost, "/api/admin/create", rootToken, fiber.Map{
		"username":   staffUser,
		"password":   "staffpass123",
		"real_name":  "Staff Reborn",
		"role_level": model.RoleStaff,
	})
	if status != http.StatusCreated {
		t.Fatalf("reuse deleted username: status = %d, want 201", status)
	}
}

func TestLoginAuditTrail(t *testing.T) {
	te := setupIntegrationEnv(t)

	rootUser := te.prefix + "root"
	rootID := te.seedRoot(t, rootUser, "rootpass123")

	// A failed then a successful attempt
	status, _ := te.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": rootUser,
		"password": "wrongpass",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password login: status = %d, want 401", status)
	}

	token := te.login(t, rootUser, "rootpass123")

	status, body := te.request(t, http.MethodGet,
		fmt.Sprintf("/api/auth/login-logs?admin_id=%d", rootID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("list login logs: status = %d, body = %v", status, body)
	}

	data, _ := body["data"].(map[string]interface{})
	list, _ := data["list"].([]interface{})
	if len(list) < 2 {
		t.Fatalf("expected at least 2 audit entries, got %d", len(list))
	}

	// Newest first: the successful login precedes the failure
	first, _ := list[0].(map[string]interface{})
	if first["status"] != model.LoginStatusSuccess {
		t.Errorf("newest entry status = %v, want %q", first["status"], model.LoginStatusSuccess)
	}

	// Logout backfills the logout time on the newest entry
	status, _ = te.request(t, http.MethodPost, "/api/auth/logout", token, nil)
	if status != http.StatusOK {
		t.Fatalf("logout: status = %d, want 200", status)
	}

	var entry model.LoginLog
	if err := te.db.Where("admin_id = ? AND status = ?", rootID, model.LoginStatusSuccess).
		Order("login_time DESC").First(&entry).Error; err != nil {
		t.Fatalf("failed to load audit entry: %v", err)
	}
	if entry.LogoutTime == nil {
		t.Error("logout_time not backfilled after logout")
	}

	var root model.Admin
	if err := te.db.First(&root, rootID).Error; err != nil {
		t.Fatalf("failed to reload root: %v", err)
	}
	if root.IsOnline != 0 {
		t.Errorf("is_online = %d after logout, want 0", root.IsOnline)
	}
	if root.LoginCount != 1 {
		t.Errorf("login_count = %d, want 1", root.LoginCount)
	}
}

func TestSessionLifecycle(t *testing.T) {
	te := setupIntegrationEnv(t)

	rootUser := te.prefix + "root"
	te.seedRoot(t, rootUser, "rootpass123")
	token := te.login(t, rootUser, "rootpass123")

	// Verify echoes the token identity
	status, body := te.request(t, http.MethodGet, "/api/auth/verify", token, nil)
	if status != http.StatusOK {
		t.Fatalf("verify: status = %d, body = %v", status, body)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["username"] != rootUser {
		t.Errorf("verify username = %v, want %q", data["username"], rootUser)
	}

	// Self-service password change, then the old password stops working
	status, _ = te.request(t, http.MethodPut, "/api/auth/change-password", token, fiber.Map{
		"current_password": "rootpass123",
		"new_password":     "newpass456",
	})
	if status != http.StatusOK {
		t.Fatalf("change password: status = %d, want 200", status)
	}

	status, _ = te.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": rootUser,
		"password": "rootpass123",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("old password after change: status = %d, want 401", status)
	}

	te.login(t, rootUser, "newpass456")

	// Garbage token is rejected
	status, _ = te.request(t, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", status)
	}
}
