package payrollerrors

import (
	"net/http"

	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidationError,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidationError,
		"end date must be after start date",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll period id",
		http.StatusBadRequest,
	)
	ErrInvalidItemID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll item id",
		http.StatusBadRequest,
	)
	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll period not found",
		http.StatusNotFound,
	)
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll item not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll status transition is not allowed",
		http.StatusConflict,
	)
	ErrPeriodImmutable = apperror.New(
		apperror.CodeInvalidState,
		"completed payroll period cannot be changed",
		http.StatusConflict,
	)
	// ErrOrphanedPeriod is returned when the period was written but its item was not.
	// The cause names the period id.
	ErrOrphanedPeriod = apperror.New(
		apperror.CodeInternalError,
		"payroll period was created but its item could not be saved",
		http.StatusInternalServerError,
	)
	ErrInvalidPeriodFilter = apperror.New(
		apperror.CodeValidationError,
		"period must be one of all, thisMonth, lastMonth",
		http.StatusBadRequest,
	)
	ErrInvalidSort = apperror.New(
		apperror.CodeValidationError,
		"sort_by must be one of created_at, period_start, gross_pay, net_pay and sort_dir asc or desc",
		http.StatusBadRequest,
	)
)
