package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotNumber = errors.New("value is not a number")

// ToFloat приводит значение, декодированное из JSON, к конечному float64.
// Числа и числовые строки принимаются, bool превращается в 1/0, NaN и ±Inf отклоняются, всё остальное — ошибка.
func ToFloat(v interface{}) (float64, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(ErrNotNumber, "%v is not a finite number", f)
	}
	return f, nil
}

func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return 0, errors.Wrapf(ErrNotNumber, "could not convert %q to float", val.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, errors.Wrapf(ErrNotNumber, "could not convert string to float: %q", val)
		}
		return f, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, errors.Wrap(ErrNotNumber, "expected a number, got null")
	default:
		return 0, errors.Wrapf(ErrNotNumber, "expected a number, got %T", v)
	}
}

// ToString превращает скалярное значение из JSON в строку, def — для отсутствующего или null.
func ToString(v interface{}, def string) string {
	switch val := v.(type) {
	case nil:
		return def
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// FormatAmount печатает сумму так, чтобы целые значения сохраняли дробную часть: 10 -> "10.0".
func FormatAmount(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
