package asset

import (
	"errors"

	asseterrors "go-assethub/internal/asset/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asseterrors.ErrAssetNotFound
	}

	return err
}
