package serialization

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/born-ml/graphcodec/internal/graph"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(refStructLevel, Ref{})
	return v
}

// refStructLevel enforces that a Ref has exactly one of its two forms.
func refStructLevel(sl validator.StructLevel) {
	ref, ok := sl.Current().Interface().(Ref)
	if !ok {
		return
	}
	hasPayload := ref.Values != nil || ref.Shape != nil || ref.DType != ""
	switch {
	case ref.ID != nil && hasPayload:
		sl.ReportError(ref.ID, "id", "ID", "exclusive", "")
	case ref.ID == nil && ref.DType == "":
		sl.ReportError(ref.DType, "dtype", "DType", "required", "")
	}
}

// Validate checks the structure of doc without building a graph: every
// record names a known node type, references use exactly one form, payload
// dtypes and shapes are well formed. Decode performs the semantic checks.
func Validate(doc Document) error {
	var errs []error
	for i := range doc {
		rec := &doc[i]
		if err := validate.Struct(rec); err != nil {
			errs = append(errs, &DecodeError{Index: i, Type: rec.Type, Err: formatValidationError(err)})
			continue
		}
		if _, ok := graph.ParseKind(rec.Type); !ok {
			errs = append(errs, &DecodeError{Index: i, Type: rec.Type, Err: ErrUnknownNodeType})
		}
	}
	return errors.Join(errs...)
}

// formatValidationError formats validation errors into readable messages.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", field, e.Tag(), e.Param())
	case "exclusive":
		return fmt.Sprintf("%s cannot be combined with an inline payload", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
