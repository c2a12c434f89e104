package handler

import (
	"net/http"

	"currency_agent_back/models"
	"currency_agent_back/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Error struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.WithField("request_id", middleware.GetRequestID(c)).Error(message)
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

// newFailureResponse — любой сбой конвертации отдаём одинаково: 500 и текст ошибки.
func newFailureResponse(c *gin.Context, err error) {
	logrus.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("Ошибка конвертации")
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.FailureResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}
