package taxdetailserrors

import (
	"net/http"

	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
)

var (
	ErrTaxDetailsNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tax details not found for this year",
		http.StatusNotFound,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeValidationError,
		"year must be a four digit number",
		http.StatusBadRequest,
	)
)
