package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/kbukum/voicelist/errors"
)

// FieldError is one failing field, keyed by its config path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var instance = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(keyName)
	return v
})

// keyName reports fields under the key a user writes in config.yml or JSON,
// so messages read "groq.timeout" rather than "Groq.Timeout".
func keyName(fld reflect.StructField) string {
	for _, tag := range []string{"mapstructure", "json"} {
		switch name, _, _ := strings.Cut(fld.Tag.Get(tag), ","); name {
		case "-":
			return ""
		case "":
		default:
			return name
		}
	}
	return toSnakeCase(fld.Name)
}

// Validate checks s against its `validate` tags. Failures come back as one
// invalid-input *apperrors.AppError whose message lists every field and whose
// "fields" detail holds the []FieldError.
func Validate(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return apperrors.Validation("validation failed")
	}

	fields := make([]FieldError, len(failures))
	lines := make([]string, len(failures))
	for i, fe := range failures {
		fields[i] = FieldError{Field: trimRoot(fe.Namespace()), Message: describe(fe)}
		lines[i] = fields[i].Field + ": " + fields[i].Message
	}
	return apperrors.Validation(strings.Join(lines, "; ")).WithDetail("fields", fields)
}

// trimRoot turns "Config.groq.timeout" into "groq.timeout".
func trimRoot(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

var bounds = map[string]string{
	"min": "at least",
	"max": "at most",
	"gt":  "greater than",
	"gte": "greater than or equal to",
	"lt":  "less than",
	"lte": "less than or equal to",
}

func describe(fe validator.FieldError) string {
	if rel, ok := bounds[fe.Tag()]; ok {
		msg := "must be " + rel + " " + fe.Param()
		if fe.Kind() == reflect.String && (fe.Tag() == "min" || fe.Tag() == "max") {
			msg += " characters"
		}
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "hostname_port":
		return "must be host:port"
	}
	return "is invalid"
}

// toSnakeCase keeps acronyms together: BaseURL -> base_url.
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
