package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries everything the HTTP router serves
type RouterConfig struct {
	Quiz         *QuizHandler
	Prediction   *PredictionHandler
	Portfolio    *PortfolioHandler
	Neighborhood *NeighborhoodHandler
	CORSOrigin   string
	Logger       *zap.Logger
}

// NewRouter builds the gin engine with every API route
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger), Metrics(), CORS(cfg.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Quiz endpoints
		api.POST("/quiz/submit", cfg.Quiz.SubmitQuiz)
		api.GET("/quiz/results", cfg.Quiz.GetQuizResults)

		// Ranking endpoints
		api.POST("/predict", cfg.Prediction.Predict)
		api.GET("/portfolio", cfg.Portfolio.GetPortfolio)

		// Neighborhood endpoints
		api.GET("/neighborhood/:name", cfg.Neighborhood.GetNeighborhood)
		api.GET("/neighborhood/:name/reviews", cfg.Neighborhood.ListReviews)
		api.POST("/neighborhood/:name/reviews", cfg.Neighborhood.SubmitReview)
	}

	return r
}
