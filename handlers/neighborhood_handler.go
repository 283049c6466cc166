package handlers

import (
	"errors"
	"net/http"

	"nychousing-backend/models"
	"nychousing-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var reviewErrorMessages = map[error]string{
	models.ErrEmptyComment:     "Review comment is required",
	models.ErrRatingNotInteger: "Rating must be an integer between 1 and 5",
	models.ErrRatingOutOfRange: "Rating must be between 1 and 5",
}

// NeighborhoodHandler handles HTTP requests for neighborhood details and reviews
type NeighborhoodHandler struct {
	neighborhoodService *service.NeighborhoodService
	logger              *zap.Logger
}

// NewNeighborhoodHandler creates a new neighborhood handler
func NewNeighborhoodHandler(neighborhoodService *service.NeighborhoodService, logger *zap.Logger) *NeighborhoodHandler {
	return &NeighborhoodHandler{
		neighborhoodService: neighborhoodService,
		logger:              logger,
	}
}

// GetNeighborhood handles GET /api/neighborhood/:name
func (h *NeighborhoodHandler) GetNeighborhood(c *gin.Context) {
	details, err := h.neighborhoodService.GetDetails(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrNeighborhoodNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Neighborhood not found")
			return
		}
		h.logger.Error("failed to get neighborhood", zap.String("name", c.Param("name")), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get neighborhood")
		return
	}

	respondOK(c, http.StatusOK, details)
}

// ListReviews handles GET /api/neighborhood/:name/reviews
func (h *NeighborhoodHandler) ListReviews(c *gin.Context) {
	reviews, err := h.neighborhoodService.ListReviews(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.logger.Error("failed to list reviews", zap.String("name", c.Param("name")), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list reviews")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"reviews": reviews,
	})
}

// SubmitReviewRequest represents the request body for a review
type SubmitReviewRequest struct {
	Author  string      `json:"author"`
	Rating  interface{} `json:"rating"`
	Comment string      `json:"comment"`
}

// SubmitReview handles POST /api/neighborhood/:name/reviews
func (h *NeighborhoodHandler) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	review, err := h.neighborhoodService.SubmitReview(c.Request.Context(), c.Param("name"), req.Author, req.Rating, req.Comment)
	if err != nil {
		for sentinel, message := range reviewErrorMessages {
			if errors.Is(err, sentinel) {
				respondError(c, http.StatusBadRequest, "INVALID_REVIEW", message)
				return
			}
		}
		h.logger.Error("failed to submit review", zap.String("name", c.Param("name")), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to submit review")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"review":  review,
		"message": "Review submitted successfully",
	})
}
