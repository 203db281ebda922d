package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("class", validateClass)
	_ = v.RegisterValidation("combat_action", validateCombatAction)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field map without
// leaking internal struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "class":
			errs[field] = "Invalid class"
		case "combat_action":
			errs[field] = "Invalid combat action"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidClasses defines the playable classes accepted on registration
var ValidClasses = map[string]bool{
	"knight": true,
	"mage":   true,
	"ranger": true,
}

// ValidCombatActions defines the accepted combat commands
var ValidCombatActions = map[string]bool{
	"attack":   true,
	"defend":   true,
	"use_item": true,
	"flee":     true,
}

func validateClass(fl validator.FieldLevel) bool {
	class := fl.Field().String()
	if class == "" {
		return true
	}
	return ValidClasses[strings.ToLower(class)]
}

func validateCombatAction(fl validator.FieldLevel) bool {
	action := fl.Field().String()
	if action == "" {
		return true
	}
	return ValidCombatActions[strings.ToLower(action)]
}
