package authController_test

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
	"mhb/models"
	authRoutes "mhb/routers/authRoutes"
	"mhb/utils"

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
	authRoutes.SetupAuthRoutes(app)
	return app
}

func login(t *testing.T, app *fiber.App, userID, password string) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(fiber.Map{"user_id": userID, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v0/auth/token", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestLoginSuccess(t *testing.T) {
	app := setupApp(t)

	hashed, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := models.User{UserID: "mo1", Name: "Owner F1", Faculty: models.FacultyF1MPM,
		Role: models.RoleModuleOwner, Password: hashed}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	status, payload := login(t, app, "mo1", "s3cret-pass")
	require.Equal(t, http.StatusOK, status)

	d := payload["data"].(map[string]interface{})
	assert.NotEmpty(t, d["access_token"])
	assert.Equal(t, "bearer", d["token_type"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	hashed, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := models.User{UserID: "mo1", Name: "Owner F1", Faculty: models.FacultyF1MPM,
		Role: models.RoleModuleOwner, Password: hashed}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	status, payload := login(t, app, "mo1", "wrong-pass")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect user_id or password!", payload["message"])
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	app := setupApp(t)

	status, payload := login(t, app, "no-such-user", "whatever1")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect user_id or password!", payload["message"])
}

func TestLoginMissingFields(t *testing.T) {
	app := setupApp(t)

	status, _ := login(t, app, "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
