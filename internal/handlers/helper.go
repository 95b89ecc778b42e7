package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

// parseIDParam parses a positive numeric path parameter, answering 400 on failure
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) (uint, bool) {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid "+param, nil,
			services.ValidationErrors{*services.NewValidationError(param, "must be a positive integer", idStr)})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body, answering 400 on malformed input
func (h *BaseHandler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return false
	}
	return true
}

// bindQuery decodes query parameters, answering 400 on malformed input
func (h *BaseHandler) bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid query parameters", err, err.Error())
		return false
	}
	return true
}
