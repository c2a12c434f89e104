package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// История конвертаций: ?limit=N, по умолчанию 20
func (h *Handler) GetConversions(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			newErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.service.History.Recent(c.Request.Context(), limit)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "cannot load conversions")
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"conversions": records,
	})
}
