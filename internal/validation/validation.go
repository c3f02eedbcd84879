// Package validation checks request transfer shapes before they reach storage.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"simplepost/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON names, not Go field names.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates v against its `validate` tags. Constraint violations are
// returned as a *models.AppError with one FieldError per rejected field.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}

	fields := make([]models.FieldError, 0, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := describe(fe)
		fields = append(fields, models.FieldError{Field: fe.Field(), Message: msg})
		msgs = append(msgs, fe.Field()+": "+msg)
	}
	return models.NewValidationError(strings.Join(msgs, "; "), fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// PostCreate validates a create request.
func PostCreate(in models.PostCreate) error {
	return Struct(in)
}

// PostUpdate validates a partial update request. Absent fields are not checked.
func PostUpdate(in models.PostUpdate) error {
	return Struct(in)
}
