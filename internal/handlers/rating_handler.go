package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	BaseHandler
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService, logger utils.Logger) *RatingHandler {
	return &RatingHandler{
		BaseHandler:   NewBaseHandler(logger),
		ratingService: ratingService,
	}
}

// GetRating returns the quiz's rating stats and the caller's own rating
// @Summary Get quiz rating
// @Tags ratings
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} services.RatingStatsResponse
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/rating [get]
func (h *RatingHandler) GetRating(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.ratingService.Stats(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RateQuiz stores or replaces the caller's rating
// @Summary Rate quiz
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path uint true "Quiz ID"
// @Param rating body services.RateQuizRequest true "Rating 1-5"
// @Success 200 {object} services.RatingStatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quizzes/{id}/rating [post]
func (h *RatingHandler) RateQuiz(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.RateQuizRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Rating quiz", "quiz_id", quizID, "rating", req.Rating)

	stats, err := h.ratingService.Rate(c.Request.Context(), quizID, req.Rating, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// BatchRatings returns the average rating of every requested quiz
// @Summary Batch ratings
// @Tags ratings
// @Accept json
// @Produce json
// @Param ids body services.BatchRatingsRequest true "Quiz IDs"
// @Success 200 {object} map[string]float64
// @Failure 400 {object} ErrorResponse
// @Router /quizzes/ratings/batch [post]
func (h *RatingHandler) BatchRatings(c *gin.Context) {
	var req services.BatchRatingsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	averages, err := h.ratingService.Batch(c.Request.Context(), req.QuizIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := make(map[string]float64, len(averages))
	for id, avg := range averages {
		resp[strconv.FormatUint(uint64(id), 10)] = avg
	}
	c.JSON(http.StatusOK, resp)
}
