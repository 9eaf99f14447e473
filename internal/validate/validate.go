package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/brew/state.go
//   type State struct {
//       Strength float64 `json:"strength" validate:"finite,gt=0"`
//       Water    float64 `json:"water" validate:"finite,gt=0"`
//   }
//
// On top of the built-in tags it registers `finite`, which rejects NaN and ±Inf
// for float fields. strconv.ParseFloat happily accepts "NaN" and "inf".
// NewCalculator validates a loaded State this way and uses FailedFields to
// reset only the fields that failed.

import (
	"errors"
	"math"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails on an empty tag or nil func.
		_ = validatorInst.RegisterValidation("finite", isFinite)
	})
	return validatorInst
}

// isFinite reports whether a float field holds a finite number. Non-float kinds pass.
func isFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() { //nolint:exhaustive // Only floats can be non-finite.
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// FailedFields returns the struct field names rejected in err, a result of Struct.
// Any other error yields nil.
func FailedFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.StructField())
	}
	return fields
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
