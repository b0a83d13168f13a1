package attendanceerrors

import (
	"net/http"

	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeInvalidState,
		"already clocked out for today",
		http.StatusConflict,
	)
	ErrMarkedAbsent = apperror.New(
		apperror.CodeInvalidState,
		"marked absent for today",
		http.StatusConflict,
	)
	ErrConcurrentMark = apperror.New(
		apperror.CodeConflict,
		"attendance for today was recorded by another request, try again",
		http.StatusConflict,
	)
	ErrAlreadyRecorded = apperror.New(
		apperror.CodeConflict,
		"attendance already recorded for this date",
		http.StatusConflict,
	)
)
