package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request struct against its validate tags before it
// reaches handler logic.
func Validate(s any) error {
	return validate.Struct(s)
}
