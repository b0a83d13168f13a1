package taxrateerrors

import (
	"errors"
	"net/http"

	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
)

var (
	ErrInvalidIncome = apperror.New(
		apperror.CodeValidationError,
		"income must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidTaxType = apperror.New(
		apperror.CodeValidationError,
		"tax type must be one of federal, state, local",
		http.StatusBadRequest,
	)
	ErrInvalidSeed = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid tax rate seed file",
		http.StatusBadRequest,
	)

	// ErrAmbiguousBracket means more than one bracket contains the income.
	ErrAmbiguousBracket = errors.New("multiple tax brackets match income")
)
