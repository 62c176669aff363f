package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/suttley13/burn2earn-backend/controllers"
)

func SetupRouter(logCtl *controllers.LogController) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = controllers.MaxUploadSize

	// the mobile client and local dev tooling hit this from arbitrary origins
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
	}))

	r.GET("/health", controllers.Health)

	r.POST("/analyze", logCtl.Analyze)
	r.GET("/logs", logCtl.ListByDay)
	r.DELETE("/logs", logCtl.Delete)
	r.DELETE("/logs/:id", logCtl.Delete)

	return r
}
