// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pulserisk/internal/models"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("activity_type", validateActivityType)
		_ = v.RegisterValidation("option_type", validateOptionType)
		_ = v.RegisterValidation("view_scope", validateViewScope)
		_ = v.RegisterValidation("iso_date", validateISODate)
	}
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch models.AssetType(fl.Field().String()) {
	case models.AssetTypeStock, models.AssetTypeOption, models.AssetTypeCash:
		return true
	default:
		return false
	}
}

func validateActivityType(fl validator.FieldLevel) bool {
	switch models.ActivityType(fl.Field().String()) {
	case models.ActivityBuy, models.ActivitySell, models.ActivityDividend,
		models.ActivityDeposit, models.ActivityWithdrawal, models.ActivityFee,
		models.ActivityAssignment, models.ActivityExpiry:
		return true
	default:
		return false
	}
}

func validateOptionType(fl validator.FieldLevel) bool {
	switch models.OptionType(fl.Field().String()) {
	case models.OptionTypeCall, models.OptionTypePut:
		return true
	default:
		return false
	}
}

func validateViewScope(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "SINGLE" || s == "COMBINED"
}

func validateISODate(fl validator.FieldLevel) bool {
	return isoDateRegex.MatchString(fl.Field().String())
}
