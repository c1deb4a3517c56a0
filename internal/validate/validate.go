// internal/validate/validate.go
package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// checker is the shared validator instance; the rules live in struct tags
// on the value being checked.
var checker = validator.New()

// Fields checks a tagged struct and returns one message per failing
// field, keyed by the struct field name. A nil map means the value
// passed.
func Fields(v interface{}) map[string]string {
	err := checker.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a rule failure but a misuse of the validator itself.
		return map[string]string{"": err.Error()}
	}

	msgs := make(map[string]string, len(verrs))
	for _, e := range verrs {
		msgs[e.Field()] = message(e)
	}
	return msgs
}

// message renders a single rule failure as the inline text shown next to
// the offending form field.
func message(e validator.FieldError) string {
	name := humanize(e.Field())
	switch e.ActualTag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters long.", name, e.Param())
	case "max":
		return fmt.Sprintf("The %s field may not exceed %s characters.", name, e.Param())
	case "email":
		return fmt.Sprintf("The %s field must contain a valid email address.", name)
	case "datetime":
		return fmt.Sprintf("The %s field must be a valid date.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

// humanize turns a Go field name into the lowercase words users see,
// e.g. "EmailAddress" -> "email address".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
