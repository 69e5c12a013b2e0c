package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"docsearch-be/internal/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and converts
// failures into a 400-mapped application error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	problems := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		switch fieldErr.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fieldErr.Field()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", fieldErr.Field()))
		}
	}

	return apperror.Validation(strings.Join(problems, ", "))
}
