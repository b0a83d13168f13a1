package taxrate

import "github.com/towet/payroll-processing-sys/internal/shared/money"

const (
	SourceBracket  = "bracket"
	SourceFallback = "fallback"
	SourceError    = "error"
)

type Resolution struct {
	TaxType string      `json:"tax_type"`
	Amount  money.Money `json:"amount"`
	// Rate is the percentage actually applied. It is 0 when Source is "error".
	Rate   float64 `json:"rate"`
	Source string  `json:"source"`
}

type Preview struct {
	Income  money.Money `json:"income"`
	TaxYear int         `json:"tax_year"`
	Federal Resolution  `json:"federal"`
	State   Resolution  `json:"state"`
	Local   Resolution  `json:"local"`
	Total   money.Money `json:"total"`
}

type PreviewRequest struct {
	Income  money.Money `json:"income"`
	TaxYear int         `json:"tax_year"`
}

type ListQuery struct {
	TaxType string `form:"type" binding:"omitempty,oneof=federal state local"`
}
