package handlers

import (
	"net/http"
	"strings"

	"nychousing-backend/models"
	"nychousing-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultSqFt  = 1000.0
	defaultBeds  = 2.0
	defaultBaths = 1.0
)

// PredictionHandler handles HTTP requests for price rankings
type PredictionHandler struct {
	rankingService *service.RankingService
	logger         *zap.Logger
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(rankingService *service.RankingService, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{
		rankingService: rankingService,
		logger:         logger,
	}
}

// PredictRequest represents the request body for a price ranking
type PredictRequest struct {
	Budget       *float64 `json:"budget"`
	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	PropertyType string   `json:"propertyType"`
	PropertySqFt *float64 `json:"propertySqft"`
	YearsFuture  *int     `json:"yearsFuture"`
}

// Criteria applies defaults and validates the request
func (r PredictRequest) Criteria() (models.PropertyCriteria, string) {
	criteria := models.PropertyCriteria{
		Type:  strings.TrimSpace(r.PropertyType),
		Beds:  valueOr(r.Beds, defaultBeds),
		Baths: valueOr(r.Baths, defaultBaths),
		SqFt:  valueOr(r.PropertySqFt, defaultSqFt),
	}
	if criteria.Type == "" {
		criteria.Type = models.DefaultPropertyType
	}
	if r.Budget != nil {
		criteria.Budget = *r.Budget
	}
	if r.YearsFuture != nil {
		criteria.YearsFuture = *r.YearsFuture
	}

	switch {
	case criteria.Budget < 0:
		return criteria, "budget must not be negative"
	case criteria.SqFt < 0:
		return criteria, "propertySqft must not be negative"
	case criteria.Beds < 0 || criteria.Baths < 0:
		return criteria, "beds and baths must not be negative"
	case criteria.YearsFuture < 0:
		return criteria, "yearsFuture must not be negative"
	}
	return criteria, ""
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Predict handles POST /api/predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	criteria, problem := req.Criteria()
	if problem != "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", problem)
		return
	}

	predictions, err := h.rankingService.RankNeighborhoods(c.Request.Context(), criteria)
	if err != nil {
		h.logger.Error("failed to rank neighborhoods", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "PREDICTION_FAILED", "Failed to rank neighborhoods")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"predictions": predictions,
	})
}
