package subscriptionerrors

import (
	"net/http"

	"go-assethub/internal/shared/apperror"
)

var (
	ErrPackageNotFound = apperror.New(
		apperror.CodeNotFound,
		"subscription package not found",
		http.StatusNotFound,
	)
	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"checkout session not found",
		http.StatusNotFound,
	)
	ErrSessionCompleted = apperror.New(
		apperror.CodeInvalidState,
		"checkout session has already been completed",
		http.StatusConflict,
	)
)
