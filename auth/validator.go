package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"pairchat/errors"
)

var validate = validator.New()

// Credentials carries the registration input constraints: the handle is the
// public identity (2 to 20 characters, case sensitive) and the secret only
// has to be present. No complexity policy is applied to the secret itself.
type Credentials struct {
	Handle string `validate:"required,min=2,max=20"`
	Secret string `validate:"required"`
}

func ValidateCredentials(c Credentials) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return nil
}
