package assetrequesterrors

import (
	"net/http"

	"go-assethub/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"asset request not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"asset request has already been processed",
		http.StatusConflict,
	)
	ErrNoCompany = apperror.New(
		apperror.CodeForbidden,
		"you have not joined a company yet",
		http.StatusForbidden,
	)
)
