package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tripdesk-hq/tripdesk/internal/domain/tax"
)

// registerValidations adds domain validation rules to gin's binding
// validator. `gstin` checks the Indian GST registration number format.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true
			}
			return tax.ValidateGSTIN(value)
		})
	}
}
