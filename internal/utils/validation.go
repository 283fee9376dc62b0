package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	validate.RegisterValidation("phone", validatePhoneField)
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("currency_code", validateCurrencyCodeField)
	validate.RegisterValidation("license_plate", validateLicensePlateField)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationErrors flattens validator errors into a field->message map
// for the API error envelope.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["error"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = field + " is required"
		case "email":
			out[field] = "invalid email address"
		case "phone":
			out[field] = "invalid phone number"
		case "strong_password":
			out[field] = "password is too weak"
		case "min":
			out[field] = field + " is too short"
		case "max":
			out[field] = field + " is too long"
		default:
			out[field] = field + " is invalid"
		}
	}

	return out
}

func validatePhoneField(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return ValidatePasswordStrength(fl.Field().String()) == nil
}

func validateCurrencyCodeField(fl validator.FieldLevel) bool {
	return ValidateCurrencyCode(fl.Field().String())
}

func validateLicensePlateField(fl validator.FieldLevel) bool {
	return IsValidLicensePlate(fl.Field().String())
}

func ValidatePasswordStrength(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > PasswordMaxLength {
		return errors.New("password is too long")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password must contain letters and digits")
	}
	return nil
}

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidName(name string) bool {
	if len(strings.TrimSpace(name)) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	return strings.TrimSpace(cleaned)
}

func IsValidLicensePlate(plate string) bool {
	// Basic validation - can be extended based on region
	plateRegex := regexp.MustCompile(`^[A-Z0-9\-\s]{2,12}$`)
	return plateRegex.MatchString(strings.ToUpper(plate))
}
