package validation

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance for configuration structs.
var Validate = validator.New()
