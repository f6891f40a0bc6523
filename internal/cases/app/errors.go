package app

import (
	"errors"

	"davazen/pkg/apperr"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
