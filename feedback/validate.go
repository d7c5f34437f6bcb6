package feedback

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is what a visitor types into the contact page.
type Form struct {
	Name    string `json:"name" form:"name" validate:"required,min=2"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Message string `json:"message" form:"message" validate:"required,min=10"`
}

func (f Form) normalized() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// ValidationError maps form field names to a human readable message.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid feedback: " + strings.Join(parts, "; ")
}

var messages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
	},
	"email": {
		"required": "Email is required",
		"email":    "Please enter a valid email",
	},
	"message": {
		"required": "Message is required",
		"min":      "Message must be at least 10 characters",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	return v
}

// Validate checks the trimmed form. It returns nil or a *ValidationError.
func Validate(f Form) error {
	err := validate.Struct(f.normalized())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out.Fields[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = "Invalid " + field
		}
		out.Fields[field] = msg
	}
	return out
}
