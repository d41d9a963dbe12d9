package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/example/leximind/internal/logger"
)

// RouterConfig carries the wiring for the HTTP router.
type RouterConfig struct {
	Handler      *Handler
	CORSOrigins  []string
	ReleaseMode  bool
	EnableAccess bool // access logging middleware
}

// NewRouter builds the gin engine with the API routes. The route layout
// mirrors the REST contract the front-end consumes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.EnableAccess {
		r.Use(accessLog(cfg.Handler.log))
	}

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	h := cfg.Handler

	r.GET("/healthz", h.HealthCheck)

	api := r.Group("/api")
	{
		api.POST("/learners", h.CreateLearner)

		learner := api.Group("/learners/:id")
		{
			learner.GET("/review-words", h.GetReviewWords)
			learner.POST("/quiz", h.CreateMiniQuiz)
			learner.POST("/quiz/answer", h.SubmitQuizAnswer)
			learner.POST("/games/scores", h.CreateGameScore)
			learner.GET("/games/scores", h.ListGameScores)
			learner.PUT("/daily-target", h.UpdateDailyTarget)
			if h.stats != nil {
				learner.GET("/statistics", h.GetStatistics)
			}
		}

		api.GET("/words", h.ListWords)
		api.POST("/words", h.CreateWord)
		api.DELETE("/words/:id", h.DeleteWord)
	}

	return r
}

// accessLog logs one line per request through the structured logger.
func accessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
