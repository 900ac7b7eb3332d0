package userController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mhb/config"
	"mhb/database"
	"mhb/middleware"
	"mhb/models"
	userRoutes "mhb/routers/userRoutes"
	"mhb/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	return app
}

func seedUser(t *testing.T, userID, name string, faculty models.Faculty, role models.UserRole) {
	t.Helper()
	user := models.User{UserID: userID, Name: name, Faculty: faculty, Role: role, Password: "x"}
	require.NoError(t, database.Database.Db.Create(&user).Error)
}

func token(t *testing.T, userID string, role models.UserRole, faculty models.Faculty) string {
	t.Helper()
	jwt, err := middleware.GenerateJWT(userID, userID, workflow.ScopeString(role, faculty))
	require.NoError(t, err)
	return jwt
}

func adminToken(t *testing.T) string {
	t.Helper()
	return token(t, "adm", models.RoleAdmin, models.FacultyAdmin)
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp.StatusCode, parsed
}

func TestUserRoutesAdminOnly(t *testing.T) {
	app := setupApp(t)

	bearer := token(t, "mo1", models.RoleModuleOwner, models.FacultyF1MPM)
	status, _ := doJSON(t, app, http.MethodGet, "/v0/users", bearer, nil)
	assert.Equal(t, http.StatusForbidden, status)

	bearer = token(t, "dean", models.RoleDeanery, models.FacultyAdmin)
	status, _ = doJSON(t, app, http.MethodGet, "/v0/users", bearer, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCreateUserHidesPassword(t *testing.T) {
	app := setupApp(t)

	status, payload := doJSON(t, app, http.MethodPost, "/v0/users", adminToken(t), fiber.Map{
		"user_id":  "mo9",
		"name":     "New Owner",
		"faculty":  "F3_IC",
		"role":     "MODULE_OWNER",
		"password": "longenoughpass",
	})
	require.Equal(t, http.StatusCreated, status)

	d := payload["data"].(map[string]interface{})
	assert.Equal(t, "mo9", d["user_id"])
	assert.Equal(t, "F3_IC", d["faculty"])
	_, exposed := d["password"]
	assert.False(t, exposed)

	// The stored password is hashed, never the plain text.
	var user models.User
	require.NoError(t, database.Database.Db.Where("user_id = ?", "mo9").First(&user).Error)
	assert.NotEqual(t, "longenoughpass", user.Password)
	assert.Contains(t, user.Password, "$argon2id$")
}

func TestCreateUserDuplicateID(t *testing.T) {
	app := setupApp(t)
	seedUser(t, "mo1", "Owner F1", models.FacultyF1MPM, models.RoleModuleOwner)

	status, _ := doJSON(t, app, http.MethodPost, "/v0/users", adminToken(t), fiber.Map{
		"user_id":  "mo1",
		"name":     "Duplicate",
		"faculty":  "F1_MPM",
		"role":     "MODULE_OWNER",
		"password": "longenoughpass",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestCreateUserValidation(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/v0/users", adminToken(t), fiber.Map{
		"user_id":  "mo9",
		"name":     "X",
		"faculty":  "NOT_A_FACULTY",
		"role":     "MODULE_OWNER",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestListUsersFilters(t *testing.T) {
	app := setupApp(t)
	seedUser(t, "mo1", "Alice Owner", models.FacultyF1MPM, models.RoleModuleOwner)
	seedUser(t, "mo2", "Bob Owner", models.FacultyF2ELS, models.RoleModuleOwner)
	seedUser(t, "pc1", "Carol Coordinator", models.FacultyF1MPM, models.RoleProgramCoordinator)

	bearer := adminToken(t)

	status, payload := doJSON(t, app, http.MethodGet, "/v0/users?faculty=F1_MPM", bearer, nil)
	require.Equal(t, http.StatusOK, status)
	d := payload["data"].(map[string]interface{})
	assert.Len(t, d["users"], 2)
	assert.EqualValues(t, 2, d["total"])

	status, payload = doJSON(t, app, http.MethodGet, "/v0/users?role=PROGRAM_COORDINATOR", bearer, nil)
	require.Equal(t, http.StatusOK, status)
	d = payload["data"].(map[string]interface{})
	assert.Len(t, d["users"], 1)

	status, payload = doJSON(t, app, http.MethodGet, "/v0/users?search=alice", bearer, nil)
	require.Equal(t, http.StatusOK, status)
	d = payload["data"].(map[string]interface{})
	users := d["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "mo1", users[0].(map[string]interface{})["user_id"])

	status, _ = doJSON(t, app, http.MethodGet, "/v0/users?faculty=BOGUS", bearer, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetUserNotFound(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/v0/users/ghost", adminToken(t), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateUserPartial(t *testing.T) {
	app := setupApp(t)
	seedUser(t, "mo1", "Alice Owner", models.FacultyF1MPM, models.RoleModuleOwner)

	status, payload := doJSON(t, app, http.MethodPatch, "/v0/users/mo1", adminToken(t), fiber.Map{
		"faculty": "F4_BS",
	})
	require.Equal(t, http.StatusOK, status)

	d := payload["data"].(map[string]interface{})
	assert.Equal(t, "F4_BS", d["faculty"])
	assert.Equal(t, "Alice Owner", d["name"])
}

func TestDeleteUserBlockedWhileOwningModules(t *testing.T) {
	app := setupApp(t)
	seedUser(t, "mo1", "Alice Owner", models.FacultyF1MPM, models.RoleModuleOwner)

	module := models.Module{ModuleNumber: "F1-900", Title: "Orphan Check", OwnerID: "mo1"}
	require.NoError(t, database.Database.Db.Create(&module).Error)

	bearer := adminToken(t)
	status, _ := doJSON(t, app, http.MethodDelete, "/v0/users/mo1", bearer, nil)
	assert.Equal(t, http.StatusConflict, status)

	require.NoError(t, database.Database.Db.Delete(&module).Error)
	status, _ = doJSON(t, app, http.MethodDelete, "/v0/users/mo1", bearer, nil)
	assert.Equal(t, http.StatusOK, status)

	var count int64
	database.Database.Db.Model(&models.User{}).Where("user_id = ?", "mo1").Count(&count)
	assert.Zero(t, count)
}
