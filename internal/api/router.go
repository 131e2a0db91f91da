package api

import (
	"github.com/gin-gonic/gin"

	"github.com/abhisek/adaptlearn/internal/logging"
)

// NewRouter wires the routes onto a new gin engine.
func NewRouter(h *Handler, log *logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(logging.OrNop(log)))

	router.GET("/healthz", HealthCheck)
	router.GET("/subjects", h.ListSubjects)
	router.GET("/recommend", h.Recommend)
	router.POST("/recommend/batch", h.BatchRecommend)
	router.GET("/content", h.Content)
	router.POST("/content/subjects", h.AddContentSubject)

	prog := router.Group("/progress")
	{
		prog.GET("/:learner", h.ListProgress)
		prog.GET("/:learner/:subject", h.GetProgress)
		prog.POST("/:learner/:subject", h.UpdateProgress)
	}
	return router
}
