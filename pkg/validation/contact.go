package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Single email-shape rule: local-part@domain with at least one dot after
// the @ and no whitespace anywhere.
var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// New returns a validator with the custom contact-form rules registered.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("email_shape", EmailShape)
	return v
}

// EmailShape validates the address shape. Empty values are left to the
// required rule so the two produce distinct messages.
func EmailShape(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return emailShapeRegex.MatchString(val)
}

// wireNames maps struct field names to the JSON field names clients see.
var wireNames = map[string]string{
	"FullName":    "fullName",
	"Email":       "email",
	"Phone":       "phone",
	"EnquiryType": "enquiryType",
	"Message":     "message",
}

// requiredMessages are the user-facing messages for missing fields.
var requiredMessages = map[string]string{
	"FullName":    "Full Name is required.",
	"Email":       "Valid Email is required.",
	"Phone":       "Phone number is required.",
	"EnquiryType": "Enquiry type is required.",
	"Message":     "Message is required.",
}

// FormatErrors converts validator errors into a wire-field-keyed message
// map. Every failing field appears; within a field the last failing rule
// wins.
func FormatErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Not a validation error; surface it under a generic key
		out["request"] = err.Error()
		return out
	}

	for _, e := range verrs {
		field := e.Field()
		name, ok := wireNames[field]
		if !ok {
			name = field
		}
		out[name] = messageFor(e)
	}
	return out
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		if msg, ok := requiredMessages[e.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("%s is required.", e.Field())
	case "email_shape":
		return "Please provide a valid email address."
	default:
		return fmt.Sprintf("%s is invalid.", e.Field())
	}
}
