package service

import (
	"errors"
	"fmt"

	"go-logistics-ws/pkg/validator"
)

// ErrValidation wraps every request-validation failure so handlers can map
// them to 400 without string matching.
var ErrValidation = errors.New("validation failed")

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
}
