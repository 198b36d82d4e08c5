package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oseikofi/campusfeed/config"
	"github.com/oseikofi/campusfeed/controllers"
	"github.com/oseikofi/campusfeed/media"
	"github.com/oseikofi/campusfeed/middleware"
	"github.com/oseikofi/campusfeed/realtime"
	"github.com/oseikofi/campusfeed/store"
	"github.com/oseikofi/campusfeed/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(directory *store.Directory, mediaStore *media.Store, hub *realtime.Hub) *gin.Engine {
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
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
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

	r.Static("/static", "./static")
	r.Static("/uploads", mediaStore.Dir())

	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(directory)
	uploadController := controllers.NewUploadController(directory, mediaStore)

	api := r.Group("/api")
	api.GET("/check-username/:username", authController.CheckUsername)
	api.GET("/user/:username", authController.GetUser)

	limited := api.Group("")
	limited.Use(middleware.RateLimitMiddleware())
	limited.POST("/register", authController.Register)
	limited.POST("/upload-avatar", uploadController.UploadAvatar)
	limited.POST("/upload-post-image", uploadController.UploadPostImage)

	r.GET("/ws", hub.HandleWS)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/uploads/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "asset not found"})
			return
		}
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
