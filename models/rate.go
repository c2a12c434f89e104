package models

// PairRate — ответ exchangerate-api /pair/{base}/{target}. Берём только поля, которые читает конвертация.
type PairRate struct {
	Result             string   `json:"result"`
	BaseCode           string   `json:"base_code,omitempty"`
	TargetCode         string   `json:"target_code,omitempty"`
	ConversionRate     *float64 `json:"conversion_rate,omitempty"`
	TimeLastUpdateUnix int64    `json:"time_last_update_unix,omitempty"`
	ErrorType          string   `json:"error-type,omitempty"`
}
