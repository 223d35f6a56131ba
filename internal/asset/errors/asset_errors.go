package asseterrors

import (
	"net/http"

	"go-assethub/internal/shared/apperror"
)

var (
	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"asset not found",
		http.StatusNotFound,
	)
	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"available_quantity must be between 0 and product_quantity",
		http.StatusBadRequest,
	)
	ErrOutOfStock = apperror.New(
		apperror.CodeConflict,
		"asset is out of stock",
		http.StatusConflict,
	)
	ErrNoCompany = apperror.New(
		apperror.CodeForbidden,
		"you have not joined a company yet",
		http.StatusForbidden,
	)
)
