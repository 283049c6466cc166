package handlers

import (
	"errors"
	"net/http"

	"nychousing-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PortfolioHandler handles HTTP requests for the recommendation portfolio
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	logger           *zap.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *service.PortfolioService, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		logger:           logger,
	}
}

// GetPortfolio handles GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.portfolioService.BuildPortfolio(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrQuizNotCompleted) {
			respondError(c, http.StatusBadRequest, "QUIZ_REQUIRED", "Complete the quiz to unlock your NYC portfolio")
			return
		}
		h.logger.Error("failed to build portfolio", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "PORTFOLIO_FAILED", "Failed to build portfolio")
		return
	}

	respondOK(c, http.StatusOK, portfolio)
}
