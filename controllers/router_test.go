package controllers_test

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crimewatch/config"
	"crimewatch/database"
	"crimewatch/routes"
	"crimewatch/utils"
)

// setupRouter wires the full route table against an in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))

	cfg := config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		UploadDir:      t.TempDir(),
	}

	r := gin.New()
	routes.SetupRoutes(r, db, cfg)
	return r, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, username, password string, admin bool) database.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := database.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, cfg config.Config, user database.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(cfg.JWTSecret, user.ID, user.Username, user.IsAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

func createReport(t *testing.T, db *gorm.DB, userID uint, description string) database.CrimeReport {
	t.Helper()
	report := database.CrimeReport{
		UserID:      userID,
		CrimeType:   "Theft",
		Description: description,
		Location:    "Main St",
		Status:      database.StatusPending,
	}
	require.NoError(t, db.Create(&report).Error)
	return report
}
