package teamerrors

import (
	"net/http"

	"go-assethub/internal/shared/apperror"
)

var (
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee account not found",
		http.StatusNotFound,
	)
	ErrNotAnEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"only employee accounts can join a team",
		http.StatusBadRequest,
	)
	ErrAlreadyAffiliated = apperror.New(
		apperror.CodeConflict,
		"employee already belongs to a company",
		http.StatusConflict,
	)
	ErrEmployeeLimitReached = apperror.New(
		apperror.CodeConflict,
		"employee limit reached, upgrade your package to add more members",
		http.StatusConflict,
	)
	ErrNoCompany = apperror.New(
		apperror.CodeForbidden,
		"you have not joined a company yet",
		http.StatusForbidden,
	)
)
