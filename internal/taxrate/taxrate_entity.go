package taxrate

import (
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/google/uuid"
)

const (
	TypeFederal = "federal"
	TypeState   = "state"
	TypeLocal   = "local"
)

// Types is the fixed resolution order used by previews.
var Types = []string{TypeFederal, TypeState, TypeLocal}

// FallbackFractions apply when no bracket matches the income.
var FallbackFractions = map[string]float64{
	TypeFederal: 0.22,
	TypeState:   0.05,
	TypeLocal:   0.01,
}

func IsValidType(t string) bool {
	_, ok := FallbackFractions[t]
	return ok
}

// TaxRate is one bracket. Rate is a percentage, so 10 means 10%.
type TaxRate struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	TaxType    string      `gorm:"index;not null" json:"tax_type"`
	StateCode  *string     `json:"state_code"`
	Locality   *string     `json:"locality"`
	TaxYear    int         `gorm:"index" json:"tax_year"`
	IncomeFrom money.Money `json:"income_from"`
	IncomeTo   money.Money `json:"income_to"`
	Rate       float64     `json:"rate"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (r TaxRate) Contains(income money.Money) bool {
	return r.IncomeFrom <= income && income <= r.IncomeTo
}
