package controllers

import (
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"postify/storage"
	"postify/utils"
)

// TestMain points Redis at a dead port so every cache lookup is a miss and
// tests never observe state from a developer's local Redis.
func TestMain(m *testing.M) {
	os.Setenv("REDIS_PORT", "1")
	os.Exit(m.Run())
}

// newTestDB builds a gorm handle over a sqlmock connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gdb, mock
}

// newTestRouter wires the API routes the way the real router does, including
// the single-method contract (anything else is a 405).
func newTestRouter(db *gorm.DB, store *storage.Local) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(utils.MethodNotAllowed)

	postController := NewPostController(db)
	api := r.Group("/api")
	api.POST("/posts", postController.CreatePost)
	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	if store != nil {
		api.POST("/upload", NewUploadController(db, store).Upload)
	}
	return r
}
