package tools

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"currency_agent_back/pkg/rateclient"
	"currency_agent_back/pkg/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
)

const (
	GetConversionFactor = "get_conversion_factor"
	Convert             = "convert"
)

// RateUnknownMessage уходит модели, если convert вызван раньше get_conversion_factor.
const RateUnknownMessage = "conversion rate is not known yet: call get_conversion_factor first"

var getConversionFactorDefinition = llms.FunctionDefinition{
	Name:        GetConversionFactor,
	Description: "This function fetches the currency conversion factor between a given base currency and a target currency",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"base_currency":   map[string]interface{}{"type": "string"},
			"target_currency": map[string]interface{}{"type": "string"},
		},
		"required": []string{"base_currency", "target_currency"},
	},
}

// conversion_rate подставляет сервер, поэтому модели он не показывается.
var convertDefinition = llms.FunctionDefinition{
	Name:        Convert,
	Description: "Given a currency rate this function calculates the target currency value from a given base currency value",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"base_currency_value": map[string]interface{}{"type": "number"},
		},
		"required": []string{"base_currency_value"},
	},
}

// NewConversionRegistry регистрирует get_conversion_factor и convert.
func NewConversionRegistry(rates rateclient.Fetcher) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(getConversionFactorDefinition, conversionFactor(rates)); err != nil {
		return nil, err
	}
	if err := r.Register(convertDefinition, convert); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeArgs(name string, args json.RawMessage) (map[string]interface{}, error) {
	values := map[string]interface{}{}
	if len(args) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(args, &values); err != nil {
		return nil, errors.Wrapf(err, "malformed %s arguments", name)
	}
	return values, nil
}

func conversionFactor(rates rateclient.Fetcher) ExecutorFunc {
	return func(ctx context.Context, state *State, args json.RawMessage) (string, error) {
		values, err := decodeArgs(GetConversionFactor, args)
		if err != nil {
			return "", err
		}
		base, ok := values["base_currency"].(string)
		if !ok || base == "" {
			return "", errors.Errorf("%s: base_currency is required", GetConversionFactor)
		}
		target, ok := values["target_currency"].(string)
		if !ok || target == "" {
			return "", errors.Errorf("%s: target_currency is required", GetConversionFactor)
		}

		rate, err := rates.PairRate(ctx, base, target)
		if err != nil {
			return "", errors.Wrap(err, GetConversionFactor)
		}
		if rate.ConversionRate == nil {
			return "", errors.Wrapf(rateclient.ErrNoRate, "%s/%s", base, target)
		}

		conversionRate := *rate.ConversionRate
		state.ConversionRate = &conversionRate

		payload, err := json.Marshal(rate)
		if err != nil {
			return "", errors.Wrap(err, "encode rate")
		}
		return string(payload), nil
	}
}

func convert(_ context.Context, state *State, args json.RawMessage) (string, error) {
	values, err := decodeArgs(Convert, args)
	if err != nil {
		return "", err
	}
	amount, err := utils.ToFloat(values["base_currency_value"])
	if err != nil {
		return "", errors.Wrapf(err, "%s: base_currency_value", Convert)
	}

	if state.ConversionRate == nil {
		logrus.Warn("convert вызван до get_conversion_factor")
		return RateUnknownMessage, nil
	}

	converted := amount * *state.ConversionRate
	if math.IsInf(converted, 0) || math.IsNaN(converted) {
		return "", errors.Wrapf(utils.ErrNotNumber, "%s: result overflows", Convert)
	}
	state.ConvertedAmount = &converted
	return strconv.FormatFloat(converted, 'f', -1, 64), nil
}
