package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"currency_agent_back/models"
	"currency_agent_back/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var ErrInvalidBody = errors.New("request body must be a JSON object")

// Конвертация через LLM. Тело {base_currency?, target_currency?, amount?}, пропущенные поля берутся по умолчанию.
func (h *Handler) Convert(c *gin.Context) {
	req, err := parseConversionRequest(c.Request.Body)
	if err != nil {
		newFailureResponse(c, err)
		return
	}

	res, err := h.service.Converter.Convert(c.Request.Context(), req)
	if err != nil {
		newFailureResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func parseConversionRequest(body io.Reader) (models.ConversionRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return models.ConversionRequest{}, errors.Wrap(err, "read request body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		return models.ConversionRequest{}, errors.Wrap(ErrInvalidBody, err.Error())
	}
	if data == nil {
		return models.ConversionRequest{}, ErrInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.ConversionRequest{}, errors.Wrap(ErrInvalidBody, "unexpected data after JSON object")
	}

	req := models.ConversionRequest{
		BaseCurrency:   utils.ToString(data["base_currency"], models.DefaultBaseCurrency),
		TargetCurrency: utils.ToString(data["target_currency"], models.DefaultTargetCurrency),
		Amount:         models.DefaultAmount,
	}

	if value, ok := data["amount"]; ok {
		amount, err := utils.ToFloat(value)
		if err != nil {
			return models.ConversionRequest{}, errors.Wrap(err, "amount")
		}
		req.Amount = amount
	}

	return req, nil
}
