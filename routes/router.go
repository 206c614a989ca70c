package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"postify/config"
	"postify/controllers"
	"postify/middleware"
	"postify/storage"
	"postify/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log and panic recovery through zap instead of gin's console logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db))

	// Each endpoint accepts exactly one method; everything else is a 405
	// carrying the rejected method name.
	r.HandleMethodNotAllowed = true
	r.NoMethod(utils.MethodNotAllowed)

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/uploads", cfg.UploadDir)
	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	store := storage.NewLocal(cfg.UploadDir, cfg.UploadMaxSizeMB)

	pageController := controllers.NewPageController(db)
	postController := controllers.NewPostController(db)
	uploadController := controllers.NewUploadController(db, store)
	statsController := controllers.NewStatsController(db)

	// Server-rendered pages
	r.GET("/", pageController.Home)
	r.GET("/posts", pageController.Posts)
	r.GET("/posts/create", pageController.CreateForm)
	r.GET("/posts/:id", pageController.PostDetail)

	api := r.Group("/api")
	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.GET("/stats", statsController.GetStats)

	writes := api.Group("")
	writes.Use(middleware.RateLimitMiddleware())
	writes.POST("/upload", uploadController.Upload)
	writes.POST("/posts", postController.CreatePost)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, "api route not found")
			return
		}
		ctx.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "Not Found"})
	})

	return r
}
