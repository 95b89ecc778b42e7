package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatisticsHandler serves everything scoped to the calling user: statistics,
// their export, recommendations and data deletion.
type StatisticsHandler struct {
	BaseHandler
	statisticsService     services.StatisticsService
	exportService         services.ExportService
	recommendationService services.RecommendationService
	userDataService       services.UserDataService
}

func NewStatisticsHandler(
	statisticsService services.StatisticsService,
	exportService services.ExportService,
	recommendationService services.RecommendationService,
	userDataService services.UserDataService,
	logger utils.Logger,
) *StatisticsHandler {
	return &StatisticsHandler{
		BaseHandler:           NewBaseHandler(logger),
		statisticsService:     statisticsService,
		exportService:         exportService,
		recommendationService: recommendationService,
		userDataService:       userDataService,
	}
}

// GetStatistics recomputes and returns the caller's statistics
// @Summary Get statistics
// @Tags statistics
// @Produce json
// @Success 200 {object} services.StatisticsResponse
// @Router /statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statisticsService.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportStatistics downloads the caller's attempt history as xlsx
// @Summary Export statistics
// @Tags statistics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /statistics/export [get]
func (h *StatisticsHandler) ExportStatistics(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	// buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.exportService.ExportStatistics(c.Request.Context(), userID, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="statistics-%s.xlsx"`, userID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetRecommendations suggests public quizzes the caller has not tried
// @Summary Get recommendations
// @Tags recommendations
// @Produce json
// @Success 200 {array} services.QuizSummary
// @Router /recommendations [get]
func (h *StatisticsHandler) GetRecommendations(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.recommendationService.Recommend(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// DeleteMyData removes all quizzes, attempts, ratings and statistics of the caller
// @Summary Delete my data
// @Tags users
// @Produce json
// @Success 200 {object} services.UserDataDeletionResult
// @Router /users/me/data [delete]
func (h *StatisticsHandler) DeleteMyData(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting user data")

	result, err := h.userDataService.DeleteAll(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
