// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"papertrade/internal/models"
	"papertrade/internal/quote"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,32}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("trade_type", validateTradeType)
		_ = v.RegisterValidation("username", validateUsername)
	}
}

// validateTicker accepts symbols in any case with surrounding whitespace; they
// are normalized before use.
func validateTicker(fl validator.FieldLevel) bool {
	return quote.ValidSymbol(quote.NormalizeSymbol(fl.Field().String()))
}

func validateTradeType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}
