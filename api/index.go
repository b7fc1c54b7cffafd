package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/dhanvanth-dev/sparkle-shop-manager/config"
	_ "github.com/dhanvanth-dev/sparkle-shop-manager/docs"
	"github.com/dhanvanth-dev/sparkle-shop-manager/middleware"
	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
	"github.com/dhanvanth-dev/sparkle-shop-manager/routes"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		models.InitDB()
		models.InitRedis()

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
