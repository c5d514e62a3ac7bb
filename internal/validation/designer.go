// Package validation checks designer records before they are persisted.
package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// RequiredFields lists the keys every designer record must carry, in the
// order they are reported.
var RequiredFields = []string{
	"name", "rating", "description", "projects", "experience",
	"price_range", "phone1", "phone2", "location", "specialties", "portfolio",
}

var validate = validator.New()

// Designer checks a decoded designer record and returns every problem found.
// An empty result means the record is valid. projects and experience are
// required but their values are not checked.
func Designer(record map[string]interface{}) []string {
	var errs []string

	for _, field := range RequiredFields {
		if _, ok := record[field]; !ok {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	if raw, ok := record["rating"]; ok {
		rating, err := ToFloat(raw)
		if err != nil {
			errs = append(errs, "Rating must be a valid number")
		} else if validate.Var(rating, "gte=1,lte=5") != nil {
			errs = append(errs, "Rating must be between 1.0 and 5.0")
		}
	}

	if raw, ok := record["price_range"]; ok {
		price, isString := raw.(string)
		if !isString || validate.Var(price, "required,oneof=$ $$ $$$") != nil {
			errs = append(errs, "Price range must be $, $$, or $$$")
		}
	}

	if raw, ok := record["specialties"]; ok && !isArray(raw) {
		errs = append(errs, "Specialties must be an array")
	}

	if raw, ok := record["portfolio"]; ok && !isArray(raw) {
		errs = append(errs, "Portfolio must be an array")
	}

	return errs
}

// ToFloat coerces a JSON or form value into a float64. nil is rejected and
// strings must be decimal.
func ToFloat(v interface{}) (float64, error) {
	switch value := v.(type) {
	case nil:
		return 0, fmt.Errorf("value is null")
	case string:
		s := strings.TrimSpace(value)
		if strings.ContainsAny(s, "xX_") {
			return 0, fmt.Errorf("%q is not a decimal number", value)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a decimal number", value)
		}
		return f, nil
	}
	return cast.ToFloat64E(v)
}

// ToInt coerces a JSON or form value into an int. Strings are always read in
// base 10, so "010" is ten and "0x1F" is rejected.
func ToInt(v interface{}) (int, error) {
	switch value := v.(type) {
	case nil:
		return 0, fmt.Errorf("value is null")
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", value)
		}
		return n, nil
	}
	return cast.ToIntE(v)
}

func isArray(v interface{}) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
