package httpapi

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance. Struct tags (`validate:"required"` etc.)
// are the schema language for BodyOf, ResponseJSON, and ErrorJSON.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateValue applies struct-tag validation to v. Structs and
// pointers to structs are validated directly; slices and arrays are
// validated element-wise. Scalars, maps, and nils pass: they declare no
// schema.
func validateValue(v any) error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := validateValue(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}
