package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	app_errors "linguachat/backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Request-body validation for the API layer. The validator caches struct
// metadata, so one shared instance serves every handler; creating one per
// request would redo that work each time.

var (
	validate *validator.Validate
	once     sync.Once
)

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest checks a payload struct against its `validate` field tags
// (e.g. `validate:"required,min=1,max=4000"` on a submission's text). On
// failure it returns app_errors.ErrValidation wrapped with a per-field
// message, which responses.go passes through to the client as a 400.
func validateRequest(payload interface{}) error {
	v := getInstance()
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	// Anything other than validator.ValidationErrors means the payload
	// itself could not be inspected, not that a rule failed.
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}

	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}
