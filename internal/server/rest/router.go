package rest

import (
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the API routes. Auth endpoints are public; step
// endpoints sit behind the Bearer-token middleware.
func NewRouter(h *Handler, secretKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
		}

		stepsGroup := api.Group("/steps")
		stepsGroup.Use(AuthRequired(secretKey))
		{
			stepsGroup.GET("", h.ListSteps)
			stepsGroup.POST("", h.AddSteps)
			stepsGroup.GET("/daily", h.DailySteps)
			stepsGroup.GET("/weekly", h.WeeklySteps)
		}
	}

	return r
}
