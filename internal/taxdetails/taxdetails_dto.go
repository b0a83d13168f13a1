package taxdetails

import "github.com/towet/payroll-processing-sys/internal/shared/money"

type UpsertTaxDetailsRequest struct {
	TaxYear               int         `json:"tax_year" binding:"omitempty,gte=1900,lte=9999"`
	FilingStatus          string      `json:"filing_status" binding:"required,oneof=single married_joint married_separate head_household"`
	Allowances            int         `json:"allowances" binding:"gte=0"`
	AdditionalWithholding money.Money `json:"additional_withholding" binding:"gte=0"`
	StateCode             string      `json:"state_code"`
	Locality              string      `json:"locality"`
}

type TaxDetailsResponse struct {
	ID                    string      `json:"id"`
	EmployeeID            string      `json:"employee_id"`
	TaxYear               int         `json:"tax_year"`
	FilingStatus          string      `json:"filing_status"`
	Allowances            int         `json:"allowances"`
	AdditionalWithholding money.Money `json:"additional_withholding"`
	StateCode             *string     `json:"state_code"`
	Locality              *string     `json:"locality"`
	UpdatedAt             string      `json:"updated_at"`
}
