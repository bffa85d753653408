package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/validation"
)

func validInput() domain.SubmissionInput {
	return domain.SubmissionInput{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "+1555",
		EnquiryType: "General",
		Message:     "Hello",
	}
}

func TestSubmissionValidation(t *testing.T) {
	v := validation.New()

	t.Run("valid input passes", func(t *testing.T) {
		in := validInput()
		assert.NoError(t, v.Struct(&in))
	})

	t.Run("malformed email is keyed under email", func(t *testing.T) {
		in := validInput()
		in.Email = "not-an-email"
		err := v.Struct(&in)
		require.Error(t, err)

		errs := validation.FormatErrors(err)
		assert.Equal(t, "Please provide a valid email address.", errs["email"])
		assert.Len(t, errs, 1)
	})

	t.Run("missing domain dot is rejected", func(t *testing.T) {
		in := validInput()
		in.Email = "jane@example"
		err := v.Struct(&in)
		require.Error(t, err)
		assert.Contains(t, validation.FormatErrors(err), "email")
	})

	t.Run("all empty yields exactly the five field errors", func(t *testing.T) {
		in := domain.SubmissionInput{}
		err := v.Struct(&in)
		require.Error(t, err)

		errs := validation.FormatErrors(err)
		assert.Len(t, errs, 5)
		assert.Equal(t, "Full Name is required.", errs["fullName"])
		assert.Equal(t, "Valid Email is required.", errs["email"])
		assert.Equal(t, "Phone number is required.", errs["phone"])
		assert.Equal(t, "Enquiry type is required.", errs["enquiryType"])
		assert.Equal(t, "Message is required.", errs["message"])
	})
}
