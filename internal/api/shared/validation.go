package shared

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/phrazzld/generic-crud/internal/api/apierror"
	"github.com/phrazzld/generic-crud/internal/domain"
)

// Validate is the validator instance shared by all handlers. Field errors are
// reported under their JSON names.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// ALLOW-PANIC: registration only fails on programmer error
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})
	return v
}

// FieldViolations converts validator errors into field violations, keeping
// the validator's order.
func FieldViolations(errs validator.ValidationErrors) []apierror.FieldViolation {
	violations := make([]apierror.FieldViolation, 0, len(errs))
	for _, fe := range errs {
		violations = append(violations, apierror.FieldViolation{
			Field:   fieldPath(fe),
			Message: violationMessage(fe),
		})
	}
	return violations
}

// fieldPath drops the root struct name from the namespace, so Item.name
// becomes name and Item.category.name becomes category.name.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func isSized(kind reflect.Kind) bool {
	switch kind {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

func violationMessage(fe validator.FieldError) string {
	param := fe.Param()
	sized := isSized(fe.Kind())

	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "required":
		if fe.Kind() == reflect.Pointer || fe.Kind() == reflect.Interface {
			return "must not be null"
		}
		return "must not be empty"
	case "max", "lte":
		if sized {
			return "size must be between 0 and " + param
		}
		return "must be less than or equal to " + param
	case "min", "gte":
		if sized {
			return "size must be at least " + param
		}
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	case "len":
		return "size must be " + param
	case "email":
		return "must be a well-formed email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of [" + param + "]"
	case "lowercase":
		return "must be lowercase"
	default:
		return fmt.Sprintf("failed on the '%s' validation", fe.Tag())
	}
}

// ObjectViolations runs v's object-level rules, if any.
func ObjectViolations(v any) []apierror.ObjectViolation {
	target := unwrapPointers(v)
	ov, ok := target.(domain.ObjectValidator)
	if !ok {
		return nil
	}

	messages := ov.Validate()
	if len(messages) == 0 {
		return nil
	}

	name := objectName(target)
	violations := make([]apierror.ObjectViolation, 0, len(messages))
	for _, msg := range messages {
		violations = append(violations, apierror.ObjectViolation{Object: name, Message: msg})
	}
	return violations
}

// unwrapPointers strips pointer levels until one more would reach a
// non-pointer, so a **Item becomes the *Item its methods are declared on.
func unwrapPointers(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return v
	}
	return rv.Interface()
}

func objectName(v any) string {
	if namer, ok := v.(domain.ObjectNamer); ok {
		return namer.ObjectName()
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return "object"
	}
	return strings.ToLower(name[:1]) + name[1:]
}
