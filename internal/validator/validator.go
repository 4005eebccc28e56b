// Package validator wires go-playground/validator with the custom
// validations used at the API boundary.
package validator

import (
	"github.com/go-playground/validator/v10"

	"card-advisor-engine/internal/models"
)

// Validate is the shared validator instance.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// frequency: one of the supported spending frequencies
	_ = Validate.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		return models.Frequency(fl.Field().String()).IsValid()
	})

	// spendcategory: online or offline
	_ = Validate.RegisterValidation("spendcategory", func(fl validator.FieldLevel) bool {
		return models.SpendCategory(fl.Field().String()).IsValid()
	})
}
