package item

import (
	"catalog/pkg/httperror"
	"errors"

	"github.com/go-playground/validator/v10"
)

// InvalidIdentifierMessage is the fixed body returned for malformed ids.
const InvalidIdentifierMessage = "Invalid ObjectId"

var validate = validator.New(validator.WithRequiredStructEnabled())

func invalidIdentifier(code string, err error) *httperror.Error {
	return httperror.BadRequest(code, InvalidIdentifierMessage, nil).WithCause(err)
}

// validateRequest checks that name and description were sent. Pointers to
// empty strings pass, so empty values stay allowed.
func validateRequest(op string, req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return httperror.BadRequest(
			"item."+op+".validation_failed",
			"Validation failed for the request: "+ve.Error(),
			nil,
		).WithCause(err)
	}

	return httperror.InternalServerError(
		"item."+op+".validation_error",
		"An unexpected validation error occurred",
		nil,
	).WithCause(err)
}
