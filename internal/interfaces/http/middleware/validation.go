package middleware

import (
	"reflect"
	"strings"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's binding validator: error messages use JSON
// field names, and the "currency" tag checks a field holds a known currency
// code.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// Empty values pass; pair with "required" where the field is mandatory.
	// 8 chars matches the currency column width.
	v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		code := finance.NormalizeCurrency(value)
		return code != "" && len(code) <= 8
	})
}
