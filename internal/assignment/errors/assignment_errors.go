package assignmenterrors

import (
	"net/http"

	"go-assethub/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"assignment not found",
		http.StatusNotFound,
	)
	ErrNotReturnable = apperror.New(
		apperror.CodeInvalidState,
		"a non-returnable asset cannot be returned",
		http.StatusConflict,
	)
	ErrAlreadyReturned = apperror.New(
		apperror.CodeInvalidState,
		"assignment has already been returned",
		http.StatusConflict,
	)
)
