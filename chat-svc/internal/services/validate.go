package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateInput runs the struct tags and reports the first offending field.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &Error{
			Kind:    KindValidation,
			Message: fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag()),
			Err:     err,
		}
	}
	return wrapValidation(err)
}
