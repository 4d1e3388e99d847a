// Package validate provides struct-tag validation for request bodies.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N / gte=N        number greater than (or equal to) N
//	lt=N / lte=N        number less than (or equal to) N
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Email    string `json:"email"    validate:"required,email"`
//	    Quantity int    `json:"quantity" validate:"required,gte=1"`
//	    Role     string `json:"role"     validate:"required,in=customer,seller,admin"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/plantnet/pkg/collection"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Untagged struct fields are validated recursively; their error keys are
// prefixed with the parent's json name, e.g. "customer.email".
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	validateStruct(rv, "", errs)
	return errs
}

func validateStruct(rv reflect.Value, prefix string, errs map[string]string) {
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		value := rv.Field(i)
		name := prefix + jsonFieldName(field)

		tag := field.Tag.Get("validate")
		if tag == "" {
			if value.Kind() == reflect.Struct {
				validateStruct(value, name+".", errs)
			}
			continue
		}

		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRe.MatchString(raw) {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		n, _ := strconv.ParseFloat(param, 64)
		if isString(v) {
			if float64(len(raw)) < n {
				return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
			}
		} else if num, ok := asNumber(v); ok && num < n {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "max":
		n, _ := strconv.ParseFloat(param, 64)
		if isString(v) {
			if float64(len(raw)) > n {
				return fmt.Sprintf("The %s field may not be greater than %s characters.", field, param)
			}
		} else if num, ok := asNumber(v); ok && num > n {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "gt":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := asNumber(v); ok && num <= n {
			return fmt.Sprintf("The %s field must be greater than %s.", field, param)
		}

	case "gte":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := asNumber(v); ok && num < n {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "lt":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := asNumber(v); ok && num >= n {
			return fmt.Sprintf("The %s field must be less than %s.", field, param)
		}

	case "lte":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := asNumber(v); ok && num > n {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "in":
		for _, item := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(item) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// splitRules splits a tag on commas, except commas inside an in=... param
// which belong to the rule's value list.
func splitRules(tag string) []string {
	parts := strings.Split(tag, ",")
	var rules []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// Continuation of an in=... list.
		if len(rules) > 0 && strings.HasPrefix(rules[len(rules)-1], "in=") && !strings.Contains(p, "=") && !isKnownRule(p) {
			rules[len(rules)-1] += "," + p
			continue
		}
		rules = append(rules, p)
	}
	return rules
}

func isKnownRule(s string) bool {
	switch s {
	case "required", "nullable", "email", "numeric", "integer":
		return true
	}
	return false
}

func hasRule(rules []string, name string) bool {
	return collection.Contains(rules, name)
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func isString(v reflect.Value) bool { return v.Kind() == reflect.String }

func asNumber(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		n, err := strconv.ParseFloat(v.String(), 64)
		return n, err == nil
	}
	return 0, false
}
