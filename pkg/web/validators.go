package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator func(valueToTest int64) bool

func newComparisonValidator(valueInClosure int64, compareFn func(argValue, closedValue int64) bool) ParamValidator {
	return func(argValue int64) bool {
		return compareFn(argValue, valueInClosure)
	}
}

// gte returns a ParamValidator that checks if the argument is greater than or equal to the value captured in the closure.
func gte(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue >= closedValue
	})
}

// lte returns a ParamValidator that checks if the argument is less than or equal to the value captured in the closure.
func lte(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue <= closedValue
	})
}

func all(validators ...ParamValidator) ParamValidator {
	return func(argValue int64) bool {
		for _, v := range validators {
			if !v(argValue) {
				return false
			}
		}
		return true
	}
}

// ParseValidateGte reads an optional int query parameter that must be >= min.
// def is returned when the parameter is absent.
func ParseValidateGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, min int64, def int32) (int32, bool) {
	return parseValidate(r, w, logger, key, def, gte(min))
}

// ParseValidateRange reads an optional int query parameter that must lie within [min, max].
// def is returned when the parameter is absent.
func ParseValidateRange(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, min, max int64, def int32) (int32, bool) {
	return parseValidate(r, w, logger, key, def, all(gte(min), lte(max)))
}

func parseValidate(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, def int32, pValidator ParamValidator) (int32, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def, true
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int32(intValue), true
}
