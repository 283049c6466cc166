package handlers

import (
	"encoding/json"
	"net/http"

	"nychousing-backend/models"
	"nychousing-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// QuizHandler handles HTTP requests for the lifestyle quiz
type QuizHandler struct {
	neighborhoodService *service.NeighborhoodService
	logger              *zap.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(neighborhoodService *service.NeighborhoodService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		neighborhoodService: neighborhoodService,
		logger:              logger,
	}
}

// SubmitQuiz handles POST /api/quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var prefs models.PreferenceVector
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindBodyWith(&prefs, binding.JSON); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}

		// A body that only carries unknown questions would otherwise be
		// stored as an unanswered quiz.
		var answered map[string]json.RawMessage
		if err := c.ShouldBindBodyWith(&answered, binding.JSON); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		if len(answered) > 0 && prefs.IsEmpty() {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Quiz answers must include at least one known question")
			return
		}
	}

	if err := h.neighborhoodService.SubmitQuiz(c.Request.Context(), &prefs); err != nil {
		h.logger.Error("failed to save quiz", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save quiz results")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "Quiz saved successfully",
	})
}

// GetQuizResults handles GET /api/quiz/results
func (h *QuizHandler) GetQuizResults(c *gin.Context) {
	prefs, err := h.neighborhoodService.QuizResults(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read quiz", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to read quiz results")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"results": prefs,
	})
}
