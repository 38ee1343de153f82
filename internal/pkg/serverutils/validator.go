package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO. The returned
// error is validator.ValidationErrors, mapped to a 400 by the error handler.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
