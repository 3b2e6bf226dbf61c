package auth

import (
	stderrors "errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/tunespace/tunespace-api/pkg/errors"
)

// formatValidationError turns gin binding errors into a readable message
// instead of the raw validator dump.
func formatValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if !stderrors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Invalid request body"
	}

	msgs := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email address")
		case "min":
			msgs = append(msgs, field+" must be at least "+fe.Param()+" characters")
		case "max":
			msgs = append(msgs, field+" must be at most "+fe.Param()+" characters")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}

// validateRegister covers rules gin binding tags cannot express.
func validateRegister(req *RegisterRequest) error {
	if !hasLetterAndDigit(req.Password) {
		return errors.NewValidation("password must contain at least one letter and one digit")
	}
	return nil
}

func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
