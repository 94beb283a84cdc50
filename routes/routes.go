package routes

import (
	"github.com/gin-gonic/gin"

	"reviewpulse/handlers"
)

// SetupRouter wires the API onto a gin engine.
func SetupRouter(svc *handlers.Service) *gin.Engine {
	r := gin.Default()

	r.StaticFile("/", "./static/index.html")

	api := r.Group("/api")
	{
		api.POST("/predict", svc.Predict)
		api.POST("/train", svc.Train)
		api.GET("/status", svc.Status)
	}

	return r
}
